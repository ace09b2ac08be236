package systems

import (
	"math"

	"go.uber.org/zap"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/events"
	"github.com/benjaminbreen/PlagueSimulator-sub002/physics"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// playerID tags the player in impact pair rate limiting
const playerID = "player"

// LocomotionSystem is the player's movement state machine: Grounded,
// Airborne and Climbing, with jump charge and buffering, coyote time,
// fall-damage accounting, contact shoves and strike resolution. It is the
// sole mutator of the player's LocomotionState.
type LocomotionSystem struct {
	ctx *SimContext
}

// NewLocomotionSystem creates the system
func NewLocomotionSystem(ctx *SimContext) *LocomotionSystem {
	return &LocomotionSystem{ctx: ctx}
}

// EventTypes returns the input events the system consumes
func (s *LocomotionSystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventMoveInput,
		events.EventJumpPressed,
		events.EventJumpReleased,
		events.EventInteract,
		events.EventStrike,
	}
}

// HandleEvent processes host input
func (s *LocomotionSystem) HandleEvent(ctx *SimContext, ev events.SimEvent) {
	p := ctx.Player
	st := &p.Loco

	switch ev.Type {
	case events.EventMoveInput:
		if payload, ok := ev.Payload.(*events.MoveInputPayload); ok {
			p.MoveX = vmath.Clamp(payload.DirX, -1, 1)
			p.MoveZ = vmath.Clamp(payload.DirZ, -1, 1)
		}

	case events.EventJumpPressed:
		s.onJumpPressed(p, st)

	case events.EventJumpReleased:
		s.onJumpReleased(p, st)

	case events.EventInteract:
		s.onInteract(p, st)

	case events.EventStrike:
		s.onStrike(p)
	}
}

func (s *LocomotionSystem) onJumpPressed(p *components.Player, st *components.LocomotionState) {
	switch st.Phase {
	case components.PhaseGrounded:
		st.JumpHeld = true
	case components.PhaseAirborne:
		if st.CoyoteTimer > 0 {
			// Coyote window: the edge was just left, jump as if grounded
			s.launchJump(p, st, 0)
		} else {
			// Early press: remember it until landing
			st.JumpBufferTimer = constants.JumpBufferWindow
		}
	case components.PhaseClimbing:
		s.climbJumpOff(p, st)
	}
}

func (s *LocomotionSystem) onJumpReleased(p *components.Player, st *components.LocomotionState) {
	held := st.JumpHeld
	st.JumpHeld = false
	if !held {
		return
	}
	if st.Phase == components.PhaseGrounded ||
		(st.Phase == components.PhaseAirborne && st.CoyoteTimer > 0) {
		s.launchJump(p, st, st.JumpCharge)
	}
	st.JumpCharge = 0
}

// launchJump enters Airborne with the charged jump velocity
func (s *LocomotionSystem) launchJump(p *components.Player, st *components.LocomotionState, charge float64) {
	st.Phase = components.PhaseAirborne
	st.VerticalVelocity = constants.BaseJumpForce + charge*constants.JumpChargeBoost
	st.Falling = true
	st.FallStartHeight = p.Position.Y
	st.CoyoteTimer = 0
	st.JumpCharge = 0
	st.JumpHeld = false
	st.SupportPropID = ""
}

// Update advances the state machine by dt
func (s *LocomotionSystem) Update(dt float64) {
	p := s.ctx.Player
	st := &p.Loco

	switch st.Phase {
	case components.PhaseClimbing:
		s.updateClimbing(p, st, dt)
	case components.PhaseGrounded:
		s.updateGrounded(p, st, dt)
	case components.PhaseAirborne:
		s.updateAirborne(p, st, dt)
	}
}

// moveIntent returns the tick's horizontal velocity from input plus the
// decaying transient launch component
func (s *LocomotionSystem) moveIntent(p *components.Player, st *components.LocomotionState, control, dt float64) (vx, vz float64) {
	mag := math.Sqrt(p.MoveX*p.MoveX + p.MoveZ*p.MoveZ)
	if mag > 1 {
		p.MoveX /= mag
		p.MoveZ /= mag
	}
	vx = p.MoveX*constants.PlayerWalkSpeed*control + st.LaunchVelX
	vz = p.MoveZ*constants.PlayerWalkSpeed*control + st.LaunchVelZ

	decay := math.Max(0, 1-constants.LaunchDecayRate*dt)
	st.LaunchVelX *= decay
	st.LaunchVelZ *= decay
	return vx, vz
}

// supportHeightAt samples the local standing height: the max of terrain,
// any prop platform under the feet, and a roof when inside a roofed
// footprint at roof elevation
func (s *LocomotionSystem) supportHeightAt(pos vmath.Vec3, y float64) (float64, string) {
	support := s.ctx.Town.HeightAt(pos.X, pos.Z)
	propID := ""

	if top, id := s.ctx.Props.PlatformHeightAt(pos, constants.PlayerRadius); id != "" {
		if top > support && y >= top-constants.StepHeight {
			support = top
			propID = id
		}
	}
	if roof := s.ctx.Town.RoofHeightAt(pos); roof > support && y >= roof-constants.StepHeight {
		support = roof
		propID = ""
	}
	return support, propID
}

func (s *LocomotionSystem) updateGrounded(p *components.Player, st *components.LocomotionState, dt float64) {
	if st.JumpHeld {
		st.JumpCharge = vmath.Clamp01(st.JumpCharge + dt/constants.JumpChargeTime)
	}

	vx, vz := s.moveIntent(p, st, 1, dt)
	s.applyMove(p, st, vx, vz, dt)
	s.resolveContacts(p, st, vx, vz)

	// Yaw follows movement intent
	if p.MoveX != 0 || p.MoveZ != 0 {
		target := math.Atan2(p.MoveZ, p.MoveX)
		p.Yaw = vmath.MoveTowardAngle(p.Yaw, target, constants.ClimbYawRate*dt)
	}

	support, propID := s.supportHeightAt(p.Position, p.Position.Y)
	st.SupportPropID = propID
	if p.Position.Y > support+constants.StepHeight {
		// Walked off an edge: airborne with a coyote grace window
		st.Phase = components.PhaseAirborne
		st.VerticalVelocity = 0
		st.CoyoteTimer = constants.CoyoteWindow
		st.Falling = true
		st.FallStartHeight = p.Position.Y
		st.SupportPropID = ""
		return
	}
	p.Position.Y = support

	s.detectStuck(p, st, vx, vz, dt)
}

func (s *LocomotionSystem) updateAirborne(p *components.Player, st *components.LocomotionState, dt float64) {
	st.CoyoteTimer = math.Max(0, st.CoyoteTimer-dt)
	st.JumpBufferTimer = math.Max(0, st.JumpBufferTimer-dt)

	vx, vz := s.moveIntent(p, st, constants.AirControlFactor, dt)
	s.applyMove(p, st, vx, vz, dt)

	st.VerticalVelocity -= s.ctx.Config.World.Gravity * dt
	p.Position.Y += st.VerticalVelocity * dt

	support, propID := s.supportHeightAt(p.Position, p.Position.Y)
	if st.VerticalVelocity <= 0 && p.Position.Y <= support {
		p.Position.Y = support
		st.SupportPropID = propID
		s.land(p, st, support)
	}
}

// land completes an Airborne episode: fall-damage accounting fires at most
// once, then a buffered jump takes off again immediately
func (s *LocomotionSystem) land(p *components.Player, st *components.LocomotionState, support float64) {
	st.Phase = components.PhaseGrounded
	st.VerticalVelocity = 0
	st.CoyoteTimer = 0

	if st.Falling {
		st.Falling = false
		drop := st.FallStartHeight - support
		if drop > constants.FallDamageThreshold {
			s.ctx.Emit(events.EventFallDamage, &events.FallDamagePayload{
				Height: drop,
				Fatal:  drop >= constants.FallFatalThreshold,
			})
		}
	}

	if st.JumpBufferTimer > 0 {
		st.JumpBufferTimer = 0
		s.launchJump(p, st, 0)
	}
}

// applyMove runs the axis-decomposed static resolution for the player
func (s *LocomotionSystem) applyMove(p *components.Player, st *components.LocomotionState, vx, vz, dt float64) {
	from := p.Position
	to := from
	to.X += vx * dt
	to.Z += vz * dt
	p.Position = s.ctx.Resolver.ResolveMove(from, to, p.Radius)
	st.LastNetMoveX = p.Position.X - from.X
	st.LastNetMoveZ = p.Position.Z - from.Z
}

// resolveContacts handles dynamic overlap with agents and props. Agents
// have infinite mass from the player's perspective: contact bounces the
// player and reports intensity to the NPC collaborator, it never
// permanently displaces an NPC.
func (s *LocomotionSystem) resolveContacts(p *components.Player, st *components.LocomotionState, vx, vz float64) {
	playerVel := vmath.Vec3{X: vx, Z: vz}

	for _, e := range s.ctx.Agents.Index().QueryRadius(p.Position, p.Radius+1) {
		a := e.Payload
		if a.State == components.AgentDeceased {
			continue
		}
		radius := a.Radius
		if radius <= 0 {
			radius = 0.35
		}
		agentPos := a.Position
		var agentVel vmath.Vec3
		closing, hit := physics.CollideCircles(
			&p.Position, &agentPos,
			&playerVel, &agentVel,
			p.Radius, radius,
			constants.PlayerMass, math.Inf(1),
			constants.PropRestitution,
		)
		if !hit || closing < constants.ShoveSpeedThreshold {
			continue
		}
		if !s.ctx.Limiter.Allow(playerID, a.ID, constants.ImpactRetriggerSlow) {
			continue
		}
		intensity := physics.Intensity(closing)
		s.ctx.Emit(events.EventAgentImpact, &events.ImpactPayload{
			SourceID:  playerID,
			TargetID:  a.ID,
			Position:  agentPos,
			Intensity: intensity,
		})
		s.ctx.Emit(events.EventImpactPuff, &events.ImpactPayload{
			SourceID:  playerID,
			TargetID:  a.ID,
			Position:  agentPos,
			Intensity: intensity,
		})
	}

	for _, prop := range s.ctx.Props.PropsNear(p.Position, p.Radius+constants.PropCellSize) {
		// Standing on a prop overlaps its footprint; that is support, not a shove
		if prop.ID == st.SupportPropID {
			continue
		}
		closing, hit := physics.CollideCircles(
			&p.Position, &prop.Position,
			&playerVel, &prop.Velocity,
			p.Radius, prop.Radius,
			constants.PlayerMass, prop.Mass,
			constants.PropRestitution,
		)
		if !hit {
			continue
		}
		prop.IsSleeping = false
		if closing >= constants.ShoveSpeedThreshold {
			s.ctx.Props.Impact(prop, playerID, physics.Intensity(closing))
		}
	}

	// The impulse exchange feeds back into the transient launch component
	st.LaunchVelX += playerVel.X - vx
	st.LaunchVelZ += playerVel.Z - vz
}

// onInteract starts or cancels a climb, else tries a pickup
func (s *LocomotionSystem) onInteract(p *components.Player, st *components.LocomotionState) {
	if st.Phase == components.PhaseClimbing {
		s.climbCancel(p, st)
		return
	}

	if c := s.ctx.Town.ClimbableNear(p.Position, constants.ClimbDetectRadius); c != nil {
		s.startClimb(p, st, c)
		return
	}
	s.ctx.Props.TryPickup(p.Position, constants.InteractReach)
}

// startClimb attaches the player to an accessory, from the ground or from
// the roof for a descent
func (s *LocomotionSystem) startClimb(p *components.Player, st *components.LocomotionState, c *components.ClimbableAccessory) {
	span := c.HeightSpan()
	if span <= 0 {
		return
	}
	st.Phase = components.PhaseClimbing
	st.IsClimbing = true
	st.ClimbableID = c.ID
	st.VerticalVelocity = 0
	st.LaunchVelX = 0
	st.LaunchVelZ = 0
	st.Falling = false
	st.SupportPropID = ""

	// Begin at the nearest anchor's end
	if p.Position.Y >= c.RoofAnchor.Y-constants.StepHeight {
		st.ClimbProgress = 1
	} else {
		st.ClimbProgress = 0
	}
	anchor := vmath.Vec3{
		X: c.GroundAnchor.X,
		Y: vmath.Lerp(c.GroundAnchor.Y, c.RoofAnchor.Y, st.ClimbProgress),
		Z: c.GroundAnchor.Z,
	}
	p.Position = anchor
}

// updateClimbing moves the player along the accessory. Normal locomotion
// and all dynamic contacts are suspended while climbing.
func (s *LocomotionSystem) updateClimbing(p *components.Player, st *components.LocomotionState, dt float64) {
	c := s.ctx.Town.Climbable(st.ClimbableID)
	if c == nil {
		// Accessory vanished under us (district change): drop cleanly
		s.exitClimb(p, st, components.PhaseGrounded)
		return
	}
	span := c.HeightSpan()
	if span <= 0 {
		s.exitClimb(p, st, components.PhaseGrounded)
		return
	}

	// Up key climbs, down key descends
	climb := -p.MoveZ
	st.ClimbProgress += climb * c.ClimbSpeed * dt / span
	p.Yaw = vmath.MoveTowardAngle(p.Yaw, c.Side.Yaw(), constants.ClimbYawRate*dt)

	if st.ClimbProgress >= 1 {
		// Top anchor: step onto the roof
		st.ClimbProgress = 1
		p.Position = c.RoofAnchor
		inward := vmath.V3Scale(c.Side.Outward(), -(constants.PlayerRadius + 0.3))
		p.Position.X += inward.X
		p.Position.Z += inward.Z
		s.exitClimb(p, st, components.PhaseGrounded)
		return
	}
	if st.ClimbProgress <= 0 {
		st.ClimbProgress = 0
		p.Position = c.GroundAnchor
		s.exitClimb(p, st, components.PhaseGrounded)
		return
	}

	p.Position.X = c.GroundAnchor.X
	p.Position.Z = c.GroundAnchor.Z
	p.Position.Y = vmath.Lerp(c.GroundAnchor.Y, c.RoofAnchor.Y, st.ClimbProgress)
}

// climbCancel steps the player off sideways away from the wall
func (s *LocomotionSystem) climbCancel(p *components.Player, st *components.LocomotionState) {
	if c := s.ctx.Town.Climbable(st.ClimbableID); c != nil {
		off := vmath.V3Scale(c.Side.Outward(), constants.ClimbCancelStep)
		p.Position.X += off.X
		p.Position.Z += off.Z
	}
	st.Falling = true
	st.FallStartHeight = p.Position.Y
	s.exitClimb(p, st, components.PhaseAirborne)
}

// climbJumpOff launches the player away from the wall into Airborne
func (s *LocomotionSystem) climbJumpOff(p *components.Player, st *components.LocomotionState) {
	if c := s.ctx.Town.Climbable(st.ClimbableID); c != nil {
		out := c.Side.Outward()
		st.LaunchVelX = out.X * constants.ClimbJumpOffSpeed
		st.LaunchVelZ = out.Z * constants.ClimbJumpOffSpeed
	}
	st.VerticalVelocity = constants.BaseJumpForce * 0.5
	st.Falling = true
	st.FallStartHeight = p.Position.Y
	s.exitClimb(p, st, components.PhaseAirborne)
}

func (s *LocomotionSystem) exitClimb(p *components.Player, st *components.LocomotionState, next components.LocomotionPhase) {
	st.IsClimbing = false
	st.ClimbableID = ""
	st.ClimbProgress = 0
	st.Phase = next
	if next == components.PhaseGrounded {
		support, propID := s.supportHeightAt(p.Position, p.Position.Y)
		p.Position.Y = support
		st.SupportPropID = propID
		st.Falling = false
	}
}

// onStrike resolves the forward cone check: the nearest qualifying agent
// wins over the nearest prop; whichever is hit first takes the knockback
func (s *LocomotionSystem) onStrike(p *components.Player) {
	facing := p.Facing()

	var bestAgent *components.AgentSnapshot
	bestAgentDistSq := constants.StrikeRange * constants.StrikeRange
	for _, e := range s.ctx.Agents.Index().QueryRadius(p.Position, constants.StrikeRange) {
		a := e.Payload
		if a.State == components.AgentDeceased {
			continue
		}
		d := vmath.GroundDistSq(p.Position, a.Position)
		if d > bestAgentDistSq || !inCone(p.Position, a.Position, facing) {
			continue
		}
		bestAgentDistSq = d
		snap := a
		bestAgent = &snap
	}
	if bestAgent != nil {
		intensity := physics.Intensity(constants.StrikeImpulse)
		s.ctx.Emit(events.EventAgentImpact, &events.ImpactPayload{
			SourceID:  playerID,
			TargetID:  bestAgent.ID,
			Position:  bestAgent.Position,
			Intensity: intensity,
		})
		s.ctx.Emit(events.EventImpactPuff, &events.ImpactPayload{
			SourceID:  playerID,
			TargetID:  bestAgent.ID,
			Position:  bestAgent.Position,
			Intensity: intensity,
		})
		return
	}

	var bestProp *components.PushableObject
	bestPropDistSq := constants.StrikeRange * constants.StrikeRange
	for _, prop := range s.ctx.Props.PropsNear(p.Position, constants.StrikeRange) {
		d := vmath.GroundDistSq(p.Position, prop.Position)
		if d > bestPropDistSq || !inCone(p.Position, prop.Position, facing) {
			continue
		}
		bestPropDistSq = d
		bestProp = prop
	}
	if bestProp != nil {
		s.ctx.Props.ApplyImpulse(bestProp.ID, vmath.V3Scale(facing, constants.StrikeImpulse))
		s.ctx.Props.Impact(bestProp, playerID, physics.Intensity(constants.StrikeImpulse))
	}
}

// inCone tests target against the forward strike cone
func inCone(origin, target, facing vmath.Vec3) bool {
	to := vmath.GroundNormal(origin, target)
	return to.X*facing.X+to.Z*facing.Z >= constants.StrikeConeCos
}

// detectStuck recovers a player pinned in geometry: sustained movement
// input with no net displacement triggers a ring scan for the nearest
// unblocked position. A recoverable condition, not an error.
func (s *LocomotionSystem) detectStuck(p *components.Player, st *components.LocomotionState, vx, vz, dt float64) {
	attempting := vx*vx+vz*vz > 0.01
	moved := math.Abs(st.LastNetMoveX)+math.Abs(st.LastNetMoveZ) > constants.StuckMinNetMove*dt
	if !attempting || moved {
		st.StuckTimer = 0
		return
	}

	st.StuckTimer += dt
	if st.StuckTimer < constants.StuckWindow {
		return
	}
	st.StuckTimer = 0

	from := p.Position
	for r := constants.StuckSearchStep; r <= constants.StuckSearchRadius; r += constants.StuckSearchStep {
		for i := 0; i < 8; i++ {
			angle := float64(i) * vmath.Tau / 8
			candidate := vmath.Vec3{
				X: from.X + math.Cos(angle)*r,
				Z: from.Z + math.Sin(angle)*r,
			}
			if s.ctx.Resolver.IsBlockedByStatic(candidate, p.Radius) {
				continue
			}
			candidate.Y = s.ctx.Town.HeightAt(candidate.X, candidate.Z)
			p.Position = candidate
			s.ctx.Emit(events.EventStuckRecovered, &events.StuckPayload{From: from, To: candidate})
			s.ctx.Log.Warn("stuck recovery relocated player",
				zap.Float64("x", candidate.X),
				zap.Float64("z", candidate.Z),
			)
			return
		}
	}
}
