package engine

import (
	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// Callbacks are the fire-and-forget hooks into external collaborators.
// All fields are optional; nil hooks are skipped. No return values are
// expected and none of these may re-enter the tick.
type Callbacks struct {
	// OnImpactPuff asks the VFX collaborator for a dust puff
	OnImpactPuff func(pos vmath.Vec3, intensity float64)

	// OnAgentImpact reports impact intensity back to the NPC simulation
	OnAgentImpact func(id string, intensity float64)

	// OnImpactSound asks the audio collaborator for a material-tagged hit
	OnImpactSound func(material components.Material, intensity float64)

	// OnShatter asks the audio collaborator for a material break sound
	OnShatter func(material components.Material)

	// OnFallDamage reports a hard landing to the game-state collaborator
	OnFallDamage func(height float64, fatal bool)

	// OnPickup hands a collected item to the inventory collaborator
	OnPickup func(itemID string, info components.PickupInfo)

	// OnShatterLoot hands shatter loot to the inventory collaborator
	OnShatterLoot func(loot []components.LootEntry, sourceKind components.PropKind)

	// OnDistrictChange notifies collaborators that the session crossed
	// into a new district and all prop/rat references are stale
	OnDistrictChange func(mapX, mapY int)
}
