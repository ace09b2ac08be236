package components

// LocomotionPhase is the top-level player movement state
type LocomotionPhase int

const (
	PhaseGrounded LocomotionPhase = iota
	PhaseAirborne
	PhaseClimbing
)

func (p LocomotionPhase) String() string {
	switch p {
	case PhaseGrounded:
		return "grounded"
	case PhaseAirborne:
		return "airborne"
	case PhaseClimbing:
		return "climbing"
	default:
		return "unknown"
	}
}

// LocomotionState is the player's movement state machine data.
// Exactly one instance, owned by the player, mutated only by the
// locomotion system, reset on respawn and district change.
type LocomotionState struct {
	Phase LocomotionPhase

	VerticalVelocity float64

	// Transient horizontal launch velocity (shoves, climb jump-off),
	// decays while airborne
	LaunchVelX float64
	LaunchVelZ float64

	// Jump charge accumulates 0..1 while the jump input is held
	JumpHeld   bool
	JumpCharge float64

	// JumpBufferTimer remembers an early press shortly before landing
	JumpBufferTimer float64
	// CoyoteTimer grants a grace window after walking off an edge
	CoyoteTimer float64

	// Fall tracking: set once on becoming airborne, consumed once on landing
	Falling         bool
	FallStartHeight float64

	// Climbing sub-state. ClimbableID is a non-owning reference resolved
	// against the town each tick; the accessory may vanish on district change.
	IsClimbing    bool
	ClimbableID   string
	ClimbProgress float64

	// SupportPropID is a weak reference to the prop the player stands on,
	// re-resolved against the prop system each tick
	SupportPropID string

	// Stuck detection window
	StuckTimer   float64
	LastNetMoveX float64
	LastNetMoveZ float64
}

// Reset restores the zero state, used on respawn and district change
func (s *LocomotionState) Reset() {
	*s = LocomotionState{}
}
