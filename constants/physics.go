package constants

// Prop physics tuning

const (
	// Gravity acceleration for airborne entities and dropped items (units/s²)
	Gravity = 22.0

	// SleepEpsilon is the speed below which a prop is considered at rest.
	// Compared against squared magnitude (SleepEpsilon²)
	SleepEpsilon = 0.05

	// BlockDamping scales reflected velocity when a prop hits static geometry
	BlockDamping = 0.2

	// BaseFrictionRate is the exponential velocity decay per second for a
	// prop of unit mass; heavier props decay faster. A shoved crate
	// (mass 2) comes to rest in about a second.
	BaseFrictionRate = 3.2
	// FrictionMassFactor adds decay per unit of mass
	FrictionMassFactor = 0.6

	// PropRestitution is the impulse restitution for prop-prop and
	// prop-agent contacts
	PropRestitution = 0.25

	// DroppedItemSettleSpeed: below this vertical speed a bounced item settles
	DroppedItemSettleSpeed = 0.8

	// Boulder rolling
	MinRollAngle         = 0.12 // rad; slopes shallower than this do not roll
	RollForce            = 14.0 // downhill acceleration at 90° (scaled by sin)
	BoulderTerminalSpeed = 7.0
	// SlopeSampleInterval throttles terrain gradient sampling (~10 Hz)
	SlopeSampleInterval = 0.1
	// GradientSampleStep is the finite-difference step for terrain slopes
	GradientSampleStep = 0.25

	// Shatter loot
	ShatterLootMax = 2
	// ShatterLootPopSpeed is the upward launch speed of spawned loot items
	ShatterLootPopSpeed = 2.5
)

// Impact events

const (
	// ImpactIntensityFloor: contacts slower than this emit no event
	ImpactIntensityFloor = 0.08
	// ImpactFullIntensitySpeed maps closing speed to intensity 1.0
	ImpactFullIntensitySpeed = 8.0

	// Per-pair re-trigger intervals (seconds)
	ImpactRetriggerFast = 0.12 // light props, rats
	ImpactRetriggerSlow = 0.45 // heavy props, agents
)

// Material restitution for dropped-item ground bounces
var MaterialRestitution = [...]float64{
	0.35, // wood
	0.15, // clay
	0.45, // stone
	0.55, // metal
	0.05, // cloth
}

// MaterialBreakThreshold is the minimum impact intensity that can shatter
// the material; zero-threshold-with-zero-chance materials never break
var MaterialBreakThreshold = [...]float64{
	0.55, // wood
	0.30, // clay
	0.85, // stone
	1.10, // metal: effectively unbreakable
	1.10, // cloth
}

// MaterialBreakChance is the per-qualifying-impact breakage probability
var MaterialBreakChance = [...]float64{
	0.35, // wood
	0.75, // clay
	0.10, // stone
	0.0,  // metal
	0.0,  // cloth
}
