package components

import (
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// PropKind identifies what a pushable object is
type PropKind int

const (
	PropCrate PropKind = iota
	PropJar
	PropBench
	PropBoulder
	PropBarrel
	PropDroppedItem
	PropKindCount
)

func (k PropKind) String() string {
	switch k {
	case PropCrate:
		return "crate"
	case PropJar:
		return "jar"
	case PropBench:
		return "bench"
	case PropBoulder:
		return "boulder"
	case PropBarrel:
		return "barrel"
	case PropDroppedItem:
		return "dropped_item"
	default:
		return "unknown"
	}
}

// Material drives impact-sound and breakage lookup
type Material int

const (
	MaterialWood Material = iota
	MaterialClay
	MaterialStone
	MaterialMetal
	MaterialCloth
	MaterialCount
)

func (m Material) String() string {
	switch m {
	case MaterialWood:
		return "wood"
	case MaterialClay:
		return "clay"
	case MaterialStone:
		return "stone"
	case MaterialMetal:
		return "metal"
	case MaterialCloth:
		return "cloth"
	default:
		return "unknown"
	}
}

// PickupInfo describes what a prop yields when picked up
type PickupInfo struct {
	ItemID   string
	Quantity int
}

// LootEntry is one item produced by a shattered prop,
// consumed by the external inventory collaborator
type LootEntry struct {
	ID       string
	ItemID   string
	Position vmath.Vec3
}

// PushableObject is a lightweight rigid body on the ground plane.
// Owned exclusively by the prop system; collaborators hold read-only views.
type PushableObject struct {
	ID       string
	Kind     PropKind
	Material Material

	Position vmath.Vec3
	Velocity vmath.Vec3
	Yaw      float64

	Mass   float64
	Radius float64
	Height float64

	IsSleeping      bool
	AngularVelocity float64

	// Dropped items fall under gravity until they settle
	Airborne bool

	Pickup *PickupInfo

	IsShattered bool
	ShatterTime float64

	// slopeAccum throttles terrain gradient sampling for boulders
	SlopeAccum float64
}
