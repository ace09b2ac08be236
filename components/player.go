package components

import (
	"math"

	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// Player is the avatar entity. Exactly one exists per session; the
// locomotion system is its sole mutator.
type Player struct {
	Position vmath.Vec3
	Yaw      float64
	Radius   float64

	// Movement intent for the current tick, unit-clamped by the host
	MoveX, MoveZ float64

	Loco LocomotionState
}

// Facing returns the unit ground vector the player is looking along
func (p *Player) Facing() vmath.Vec3 {
	return vmath.Vec3{X: math.Cos(p.Yaw), Z: math.Sin(p.Yaw)}
}
