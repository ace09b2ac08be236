package systems

import (
	"math"
	"math/rand"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/town"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// RatSystem runs the vermin: a two-state wander/flee machine per rat,
// sharing the static blocking checks and reduced-rate scheduling of the
// larger agents
type RatSystem struct {
	ctx  *SimContext
	rats []*components.Rat
	rng  *rand.Rand
}

// NewRatSystem seeds the district's rats
func NewRatSystem(ctx *SimContext) *RatSystem {
	s := &RatSystem{ctx: ctx}
	s.Reseed(ctx.Town, ctx.Config.World.RatCount)
	return s
}

// Reseed regenerates the rat population for a district
func (s *RatSystem) Reseed(t *town.Town, count int) {
	blocked := func(pos vmath.Vec3, radius float64) bool {
		return s.ctx.Resolver.IsBlockedByStatic(pos, radius)
	}
	s.rats = t.SeedRats(count, blocked)
	s.rng = town.Rand(t.MapX, t.MapY, t.Seed^0x72617473)
}

// Rats returns the live rat slice for read-only iteration (render)
func (s *RatSystem) Rats() []*components.Rat {
	return s.rats
}

// Update steps every rat at its scheduled rate
func (s *RatSystem) Update(dt float64) {
	playerPos := s.ctx.Player.Position
	for _, r := range s.rats {
		interval := constants.NearUpdateInterval
		if vmath.GroundDistSq(r.Position, playerPos) > constants.FarDistance*constants.FarDistance {
			interval = constants.FarUpdateInterval
		}
		r.UpdateAccum += dt
		if r.UpdateAccum < interval {
			continue
		}
		banked := r.UpdateAccum
		r.UpdateAccum = 0
		s.stepRat(r, banked, playerPos)
	}
}

// nearestThreat picks whichever of the player and the nearby agents stands
// closest to the rat. Deceased agents scare nothing.
func (s *RatSystem) nearestThreat(r *components.Rat, playerPos vmath.Vec3) (vmath.Vec3, float64) {
	threat := playerPos
	distSq := vmath.GroundDistSq(r.Position, playerPos)
	for _, e := range s.ctx.Agents.Index().QueryRadius(r.Position, constants.RatFleeRadius) {
		if e.Payload.State == components.AgentDeceased {
			continue
		}
		if d := vmath.GroundDistSq(r.Position, e.Position); d < distSq {
			threat = e.Position
			distSq = d
		}
	}
	return threat, distSq
}

// stepRat advances one rat by its banked dt
func (s *RatSystem) stepRat(r *components.Rat, dt float64, playerPos vmath.Vec3) {
	threatPos, threatDistSq := s.nearestThreat(r, playerPos)

	switch r.State {
	case components.RatWandering:
		if threatDistSq < constants.RatFleeRadius*constants.RatFleeRadius {
			r.State = components.RatFleeing
			break
		}
		r.WanderTimer -= dt
		if r.WanderTimer <= 0 {
			r.Heading = s.rng.Float64() * vmath.Tau
			r.WanderTimer = constants.RatWanderMinHold +
				s.rng.Float64()*(constants.RatWanderMaxHold-constants.RatWanderMinHold)
		}
		r.Speed = constants.RatWalkSpeed

	case components.RatFleeing:
		if threatDistSq > constants.RatCalmRadius*constants.RatCalmRadius {
			r.State = components.RatWandering
			r.WanderTimer = 0
			break
		}
		// Steer directly away from the threat
		away := vmath.GroundNormal(threatPos, r.Position)
		r.Heading = math.Atan2(away.Z, away.X)
		r.Speed = constants.RatFleeSpeed
	}

	step := vmath.Vec3{
		X: math.Cos(r.Heading) * r.Speed * dt,
		Z: math.Sin(r.Heading) * r.Speed * dt,
	}
	candidate := vmath.V3Add(r.Position, step)
	resolved := s.ctx.Resolver.ResolveMove(r.Position, candidate, constants.RatRadius)

	// A fully blocked wanderer picks a fresh heading next step
	if resolved.X == r.Position.X && resolved.Z == r.Position.Z && r.State == components.RatWandering {
		r.WanderTimer = 0
	}
	r.Position = resolved
	r.Position.Y = s.ctx.Town.HeightAt(r.Position.X, r.Position.Z)
}
