package constants

// Player locomotion tuning.
// These are empirically tuned starting calibrations, not physical derivations.

const (
	PlayerRadius    = 0.35
	PlayerWalkSpeed = 4.2
	PlayerMass      = 8.0

	// AirControlFactor scales steering while airborne
	AirControlFactor = 0.55

	// StepHeight is the largest support-height rise walked over without
	// going airborne (curbs, low prop edges)
	StepHeight = 0.45

	// InteractReach bounds pickup distance
	InteractReach = 1.2

	// Jump
	BaseJumpForce   = 7.0
	JumpChargeBoost = 4.5
	// JumpChargeTime is how long a held jump takes to reach full charge
	JumpChargeTime = 1.1

	// CoyoteWindow still honors a jump briefly after walking off an edge
	CoyoteWindow = 0.15
	// JumpBufferWindow remembers an early press until landing
	JumpBufferWindow = 0.12

	// LaunchDecayRate is the per-second decay of transient launch velocity
	LaunchDecayRate = 2.2

	// Fall damage thresholds (world units of fall distance).
	// Damage is exclusive at the low bound, fatal inclusive at the high bound:
	// a 3.0 fall is safe, 3.01 hurts, 5.99 hurts, 6.0 kills.
	FallDamageThreshold = 3.0
	FallFatalThreshold  = 6.0

	// Climbing
	ClimbDetectRadius = 0.9
	ClimbCancelStep   = 0.6 // sideways step-off distance on cancel
	ClimbJumpOffSpeed = 3.0 // outward launch when jumping off a wall
	ClimbYawRate      = 6.0 // rad/s shortest-path turn toward the wall face

	// Shove / strike
	ShoveSpeedThreshold = 1.2
	StrikeRange         = 1.6
	StrikeConeCos       = 0.5 // cos(60°): forward cone half-angle
	StrikeImpulse       = 5.0

	// Stuck recovery: no net displacement for this long while input is held
	StuckWindow     = 1.5
	StuckMinNetMove = 0.05
	// StuckSearchRadius bounds the ring scan for a free position
	StuckSearchRadius = 3.0
	StuckSearchStep   = 0.5
)

// Agent and rat update scheduling

const (
	// Agents within FarDistance of the player update at NearUpdateInterval,
	// beyond it at FarUpdateInterval. Accumulators keep elapsed simulated
	// time exact across the boundary.
	FarDistance        = 24.0
	NearUpdateInterval = 0.08 // ~12.5 Hz
	FarUpdateInterval  = 0.25 // ~4 Hz

	RatWalkSpeed      = 1.6
	RatFleeSpeed      = 3.4
	RatFleeRadius     = 3.0
	RatCalmRadius     = 5.0
	RatWanderMinHold  = 0.8
	RatWanderMaxHold  = 2.6
	RatRadius         = 0.15
)
