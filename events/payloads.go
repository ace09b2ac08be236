package events

import (
	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// ImpactPayload describes one resolved contact between two entities
type ImpactPayload struct {
	SourceID string
	TargetID string
	Position vmath.Vec3
	// Intensity is 0..1, derived from closing speed
	Intensity float64
	Material  components.Material
}

// ShatterPayload describes a prop breaking apart
type ShatterPayload struct {
	PropID   string
	Kind     components.PropKind
	Material components.Material
	Position vmath.Vec3
}

// ShatterLootPayload carries loot generated from a shattered prop
type ShatterLootPayload struct {
	SourceKind components.PropKind
	Loot       []components.LootEntry
}

// FallDamagePayload reports a hard landing
type FallDamagePayload struct {
	Height float64
	Fatal  bool
}

// PickupPayload reports a collected prop
type PickupPayload struct {
	PropID string
	Info   components.PickupInfo
}

// StuckPayload reports an automatic relocation out of geometry
type StuckPayload struct {
	From vmath.Vec3
	To   vmath.Vec3
}

// DistrictChangePayload requests teardown and reseeding
type DistrictChangePayload struct {
	MapX, MapY int
}

// MoveInputPayload is the player's movement intent for a tick
type MoveInputPayload struct {
	DirX, DirZ float64
}
