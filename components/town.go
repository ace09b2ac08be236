package components

import (
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// FootprintShape selects the ground-plane collision test for a footprint
type FootprintShape int

const (
	FootprintSquare FootprintShape = iota
	FootprintCircle
)

// StaticFootprint is an immovable building or obstacle on the ground plane.
// Immutable for the lifetime of the current map; owned by world generation.
type StaticFootprint struct {
	ID       string
	Position vmath.Vec3
	Shape    FootprintShape

	// HalfExtent for squares, Radius for circles
	HalfExtent float64
	Radius     float64

	// RoofHeight > 0 marks a walkable roof (buildings)
	RoofHeight float64
}

// Extent returns the footprint's widest ground reach from its center
func (f *StaticFootprint) Extent() float64 {
	if f.Shape == FootprintCircle {
		return f.Radius
	}
	return f.HalfExtent
}

// WallSide identifies one of the four cardinal faces of a building
type WallSide int

const (
	WallNorth WallSide = iota // -Z face
	WallSouth                 // +Z face
	WallEast                  // +X face
	WallWest                  // -X face
)

// Yaw returns the facing the climber holds against this wall
func (s WallSide) Yaw() float64 {
	switch s {
	case WallNorth:
		return vmath.Pi
	case WallSouth:
		return 0
	case WallEast:
		return -vmath.Pi / 2
	default:
		return vmath.Pi / 2
	}
}

// Outward returns the unit ground vector pointing away from the wall
func (s WallSide) Outward() vmath.Vec3 {
	switch s {
	case WallNorth:
		return vmath.Vec3{Z: -1}
	case WallSouth:
		return vmath.Vec3{Z: 1}
	case WallEast:
		return vmath.Vec3{X: 1}
	default:
		return vmath.Vec3{X: -1}
	}
}

// ClimbableAccessory is a ladder or trellis fixed to one wall of a building.
// Static per map.
type ClimbableAccessory struct {
	ID         string
	BuildingID string
	Side       WallSide

	GroundAnchor vmath.Vec3
	RoofAnchor   vmath.Vec3
	ClimbSpeed   float64
}

// HeightSpan returns the vertical distance covered by the accessory
func (c *ClimbableAccessory) HeightSpan() float64 {
	return c.RoofAnchor.Y - c.GroundAnchor.Y
}
