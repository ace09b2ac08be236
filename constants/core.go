package constants

// Core engine tuning

const (
	// EventQueueSize must be a power of two (ring buffer mask arithmetic)
	EventQueueSize  = 1024
	EventBufferMask = EventQueueSize - 1

	// MaxTickDelta clamps dt after pauses or stalls
	MaxTickDelta = 0.1

	// TickInterval is the host frame cadence in the terminal harness
	TickIntervalMs = 33
)

// Spatial index cell sizes, roughly the largest expected query radius
// so a query touches ~9 cells
const (
	StaticCellSize = 6.0
	AgentCellSize  = 4.0
	PropCellSize   = 3.0
)
