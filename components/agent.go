package components

import (
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// AgentState is the health/behavior state owned by the NPC-simulation
// collaborator. The core reads it for display and flee heuristics only.
type AgentState int

const (
	AgentHealthy AgentState = iota
	AgentInfected
	AgentDeceased
	AgentFleeing
	AgentMourning
	AgentGathering
)

func (s AgentState) String() string {
	switch s {
	case AgentHealthy:
		return "healthy"
	case AgentInfected:
		return "infected"
	case AgentDeceased:
		return "deceased"
	case AgentFleeing:
		return "fleeing"
	case AgentMourning:
		return "mourning"
	case AgentGathering:
		return "gathering"
	default:
		return "unknown"
	}
}

// AgentSnapshot is the read-mostly per-tick view of one NPC.
// Refreshed wholesale into the dynamic spatial index every tick;
// the core never mutates State.
type AgentSnapshot struct {
	ID       string
	Position vmath.Vec3
	Radius   float64
	State    AgentState
}

// RatState is the finite wander/flee state of a rat
type RatState int

const (
	RatWandering RatState = iota
	RatFleeing
)

// Rat is a vermin agent simulated entirely inside the core
type Rat struct {
	ID       string
	Position vmath.Vec3
	Heading  float64
	Speed    float64
	State    RatState

	// WanderTimer counts down to the next heading change
	WanderTimer float64
	// UpdateAccum implements reduced-rate updates for far rats
	UpdateAccum float64
}
