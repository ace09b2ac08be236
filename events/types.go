package events

import (
	"time"
)

// EventType represents the type of simulation event
type EventType int

const (
	// EventImpactPuff requests a dust/VFX puff at a world position
	// Trigger: any resolved contact above the intensity floor
	// Consumer: render/audio collaborators | Payload: *ImpactPayload
	EventImpactPuff EventType = iota

	// EventAgentImpact reports impact intensity back to the NPC collaborator
	// Trigger: player or prop striking an agent
	// Consumer: NPC-simulation callback | Payload: *ImpactPayload
	EventAgentImpact

	// EventPropImpact marks a material-tagged prop contact for sound lookup
	// Trigger: prop-prop or player-prop contact
	// Consumer: audio collaborator | Payload: *ImpactPayload
	EventPropImpact

	// EventShatter signals a prop breaking apart
	// Trigger: qualifying impact above the material break threshold
	// Consumer: audio/VFX collaborators | Payload: *ShatterPayload
	EventShatter

	// EventShatterLoot delivers loot entries from a shattered prop
	// Trigger: shatter resolution
	// Consumer: inventory collaborator | Payload: *ShatterLootPayload
	EventShatterLoot

	// EventFallDamage reports a landing beyond the damage threshold
	// Trigger: locomotion landing; fires at most once per airborne episode
	// Consumer: game-state collaborator | Payload: *FallDamagePayload
	EventFallDamage

	// EventPickup signals a prop collected by the player
	// Trigger: interact input over a pickup-carrying prop
	// Consumer: inventory collaborator | Payload: *PickupPayload
	EventPickup

	// EventStuckRecovered notes an automatic safe-position relocation
	// Trigger: locomotion stuck detection | Payload: *StuckPayload
	EventStuckRecovered

	// EventDistrictChange tears down and reseeds the simulation
	// Trigger: host on player crossing a district boundary
	// Consumer: SimContext | Payload: *DistrictChangePayload
	EventDistrictChange

	// EventMoveInput carries the player's movement intent for the tick
	// Trigger: host input handling | Payload: *MoveInputPayload
	EventMoveInput

	// EventJumpPressed signals jump input down (begins charge)
	// Trigger: host input | Consumer: LocomotionSystem | Payload: nil
	EventJumpPressed

	// EventJumpReleased signals jump input up (fires or buffers the jump)
	// Trigger: host input | Consumer: LocomotionSystem | Payload: nil
	EventJumpReleased

	// EventInteract signals the interact input (climb, pickup)
	// Trigger: host input | Consumer: LocomotionSystem | Payload: nil
	EventInteract

	// EventStrike signals the strike input (forward cone shove)
	// Trigger: host input | Consumer: LocomotionSystem | Payload: nil
	EventStrike

	EventTypeCount
)

// SimEvent is a single simulation event with metadata
type SimEvent struct {
	Type      EventType
	Payload   any
	Tick      int64
	Timestamp time.Time
}
