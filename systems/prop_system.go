package systems

import (
	"math"
	"math/rand"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/engine"
	"github.com/benjaminbreen/PlagueSimulator-sub002/events"
	"github.com/benjaminbreen/PlagueSimulator-sub002/physics"
	"github.com/benjaminbreen/PlagueSimulator-sub002/town"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// PropSystem owns every PushableObject in the district: integration,
// friction, sleep/wake, ground bounces, boulder rolling, prop-prop
// collisions, breakage and pickup. Collaborators hold read-only views;
// nothing outside this system mutates a prop.
type PropSystem struct {
	ctx *SimContext

	props []*components.PushableObject
	byID  map[string]*components.PushableObject

	// index is rebuilt wholesale each tick from the live props
	index *engine.SpatialIndex[*components.PushableObject]

	// rng drives breakage rolls and loot; seeded per district so shatter
	// outcomes regenerate deterministically
	rng *rand.Rand
}

// NewPropSystem seeds the district's props and builds the system
func NewPropSystem(ctx *SimContext) *PropSystem {
	s := &PropSystem{
		ctx:   ctx,
		byID:  make(map[string]*components.PushableObject),
		index: engine.NewSpatialIndex[*components.PushableObject](constants.PropCellSize),
	}
	s.Reseed(ctx.Town)
	return s
}

// Reseed regenerates the prop list for a district. Deterministic from
// (mapX, mapY, seed); nothing is persisted.
func (s *PropSystem) Reseed(t *town.Town) {
	blocked := func(pos vmath.Vec3, radius float64) bool {
		return s.ctx.Resolver.IsBlockedByStatic(pos, radius)
	}
	s.props = t.SeedProps(blocked)
	for id := range s.byID {
		delete(s.byID, id)
	}
	for _, p := range s.props {
		s.byID[p.ID] = p
	}
	s.rng = town.Rand(t.MapX, t.MapY, t.Seed^0x70726f7073)
	s.rebuildIndex()
}

// Count returns the number of live (non-shattered) props
func (s *PropSystem) Count() int {
	n := 0
	for _, p := range s.props {
		if !p.IsShattered {
			n++
		}
	}
	return n
}

// Prop resolves a non-owning id reference; nil when the prop is gone or
// shattered. Callers must never cache the pointer across ticks.
func (s *PropSystem) Prop(id string) *components.PushableObject {
	p, ok := s.byID[id]
	if !ok || p.IsShattered {
		return nil
	}
	return p
}

// All returns the live prop slice for read-only iteration (render)
func (s *PropSystem) All() []*components.PushableObject {
	return s.props
}

// PropsNear returns live props whose cell neighborhood covers pos
func (s *PropSystem) PropsNear(pos vmath.Vec3, radius float64) []*components.PushableObject {
	entries := s.index.QueryRadius(pos, radius)
	out := make([]*components.PushableObject, 0, len(entries))
	for _, e := range entries {
		if !e.Payload.IsShattered {
			out = append(out, e.Payload)
		}
	}
	return out
}

// PlatformHeightAt returns the top height and id of the tallest prop whose
// footprint covers pos, for "standing on a crate" support sampling.
// Returns (0, "") when nothing is underneath.
func (s *PropSystem) PlatformHeightAt(pos vmath.Vec3, radius float64) (float64, string) {
	best := 0.0
	bestID := ""
	for _, p := range s.PropsNear(pos, radius+constants.PropCellSize) {
		if p.Kind == components.PropDroppedItem {
			continue
		}
		reach := p.Radius + radius*0.5
		if vmath.GroundDistSq(pos, p.Position) > reach*reach {
			continue
		}
		top := p.Position.Y + p.Height
		if top > best {
			best = top
			bestID = p.ID
		}
	}
	return best, bestID
}

// ApplyImpulse adds velocity to a prop scaled by inverse mass and wakes it.
// Shattered props ignore impulses.
func (s *PropSystem) ApplyImpulse(id string, impulse vmath.Vec3) {
	p := s.Prop(id)
	if p == nil || p.Mass <= 0 || !vmath.V3Finite(impulse) {
		return
	}
	p.Velocity = vmath.V3Add(p.Velocity, vmath.V3Scale(impulse, 1/p.Mass))
	p.IsSleeping = false
}

// SpawnDroppedItem adds an airborne dropped item: shatter loot popping out
// of a broken prop, or an external inventory collaborator discarding
// something
func (s *PropSystem) SpawnDroppedItem(id, itemID string, pos, vel vmath.Vec3, material components.Material) {
	p := &components.PushableObject{
		ID:       id,
		Kind:     components.PropDroppedItem,
		Material: material,
		Position: pos,
		Velocity: vel,
		Mass:     0.5,
		Radius:   0.2,
		Height:   0.2,
		Airborne: true,
		Pickup:   &components.PickupInfo{ItemID: itemID, Quantity: 1},
	}
	s.props = append(s.props, p)
	s.byID[p.ID] = p
}

// TryPickup removes the nearest in-range pickup-carrying prop and reports
// it to the inventory collaborator. Returns true when something was taken.
func (s *PropSystem) TryPickup(pos vmath.Vec3, reach float64) bool {
	var best *components.PushableObject
	bestDistSq := reach * reach
	for _, p := range s.PropsNear(pos, reach) {
		if p.Pickup == nil {
			continue
		}
		d := vmath.GroundDistSq(pos, p.Position)
		if d <= bestDistSq {
			best = p
			bestDistSq = d
		}
	}
	if best == nil {
		return false
	}
	s.remove(best.ID)
	s.ctx.Emit(events.EventPickup, &events.PickupPayload{
		PropID: best.ID,
		Info:   *best.Pickup,
	})
	return true
}

// Impact runs the breakage check for one qualifying contact and emits the
// material-tagged impact event. Idempotent for shattered props.
func (s *PropSystem) Impact(p *components.PushableObject, other string, intensity float64) {
	if p == nil || p.IsShattered || intensity < constants.ImpactIntensityFloor {
		return
	}
	if !s.ctx.Limiter.Allow(p.ID, other, retriggerInterval(p)) {
		return
	}

	s.ctx.Emit(events.EventPropImpact, &events.ImpactPayload{
		SourceID:  other,
		TargetID:  p.ID,
		Position:  p.Position,
		Intensity: intensity,
		Material:  p.Material,
	})
	s.ctx.Emit(events.EventImpactPuff, &events.ImpactPayload{
		SourceID:  other,
		TargetID:  p.ID,
		Position:  p.Position,
		Intensity: intensity,
	})

	m := int(p.Material)
	if intensity > constants.MaterialBreakThreshold[m] && s.rng.Float64() < constants.MaterialBreakChance[m] {
		s.shatter(p)
	}
}

// shatter transitions a prop to its broken terminal state exactly once
func (s *PropSystem) shatter(p *components.PushableObject) {
	if p.IsShattered {
		return
	}
	p.IsShattered = true
	p.ShatterTime = float64(s.ctx.TickCount)
	p.Velocity = vmath.Vec3{}
	p.IsSleeping = true

	s.ctx.Emit(events.EventShatter, &events.ShatterPayload{
		PropID:   p.ID,
		Kind:     p.Kind,
		Material: p.Material,
		Position: p.Position,
	})
	loot := town.ShatterLoot(p, s.rng)
	if len(loot) == 0 {
		return
	}
	for _, entry := range loot {
		pos := entry.Position
		pos.Y = p.Position.Y + 0.3
		vel := vmath.Vec3{
			X: (entry.Position.X - p.Position.X) * 4,
			Y: constants.ShatterLootPopSpeed,
			Z: (entry.Position.Z - p.Position.Z) * 4,
		}
		s.SpawnDroppedItem(entry.ID, entry.ItemID, pos, vel, components.MaterialCloth)
	}
	s.ctx.Emit(events.EventShatterLoot, &events.ShatterLootPayload{
		SourceKind: p.Kind,
		Loot:       loot,
	})
}

// Update integrates all prop motion for the tick
func (s *PropSystem) Update(dt float64) {
	s.rebuildIndex()

	for _, p := range s.props {
		if p.IsShattered {
			continue
		}
		s.updateProp(p, dt)
	}

	s.resolvePropContacts()
}

func (s *PropSystem) updateProp(p *components.PushableObject, dt float64) {
	if p.Kind == components.PropBoulder {
		s.updateBoulderRoll(p, dt)
	}
	if p.IsSleeping {
		return
	}

	groundSpeedSq := p.Velocity.X*p.Velocity.X + p.Velocity.Z*p.Velocity.Z
	if groundSpeedSq < constants.SleepEpsilon*constants.SleepEpsilon && !p.Airborne {
		s.trySleep(p)
		return
	}

	// Axis-decomposed ground move; the blocked axis reflects with damping
	from := p.Position
	candidate := vmath.V3Add(from, vmath.V3Scale(p.Velocity, dt))
	resolved := s.ctx.Resolver.ResolveMove(from, candidate, p.Radius)
	if resolved.X != candidate.X {
		p.Velocity.X = -p.Velocity.X * constants.BlockDamping
		resolved.X = from.X
	}
	if resolved.Z != candidate.Z {
		p.Velocity.Z = -p.Velocity.Z * constants.BlockDamping
		resolved.Z = from.Z
	}
	p.Position.X = resolved.X
	p.Position.Z = resolved.Z

	if p.Airborne {
		s.updateVertical(p, dt)
	} else {
		p.Position.Y = s.ctx.Town.HeightAt(p.Position.X, p.Position.Z)
	}

	// Exponential friction decay, heavier props decay faster
	rate := constants.BaseFrictionRate + constants.FrictionMassFactor*p.Mass
	decay := math.Max(0, 1-rate*dt)
	p.Velocity.X *= decay
	p.Velocity.Z *= decay

	if p.AngularVelocity != 0 {
		p.Yaw = vmath.WrapAngle(p.Yaw + p.AngularVelocity*dt)
		p.AngularVelocity *= decay
	}
}

// updateVertical integrates a dropped item's fall and ground bounce
func (s *PropSystem) updateVertical(p *components.PushableObject, dt float64) {
	p.Velocity.Y -= s.ctx.Config.World.Gravity * dt
	p.Position.Y += p.Velocity.Y * dt

	ground := s.ctx.Town.HeightAt(p.Position.X, p.Position.Z)
	if p.Position.Y > ground {
		return
	}
	p.Position.Y = ground

	impactSpeed := -p.Velocity.Y
	bounce := impactSpeed * constants.MaterialRestitution[p.Material]
	if bounce < constants.DroppedItemSettleSpeed {
		p.Velocity.Y = 0
		p.Airborne = false
		return
	}
	p.Velocity.Y = bounce
	s.Impact(p, "ground", physics.Intensity(impactSpeed))
}

// updateBoulderRoll samples the slope at a throttled ~10 Hz and rolls the
// boulder downhill above the minimum angle. A sleeping boulder wakes when
// the ground under it steepens.
func (s *PropSystem) updateBoulderRoll(p *components.PushableObject, dt float64) {
	p.SlopeAccum += dt
	if p.SlopeAccum < constants.SlopeSampleInterval {
		return
	}
	banked := p.SlopeAccum
	p.SlopeAccum = 0

	angle, downhill := s.ctx.Town.SlopeAngleAt(p.Position.X, p.Position.Z)
	if angle < constants.MinRollAngle {
		return
	}

	p.IsSleeping = false
	accel := constants.RollForce * math.Sin(angle)
	p.Velocity.X += downhill.X * accel * banked
	p.Velocity.Z += downhill.Z * accel * banked

	speedSq := p.Velocity.X*p.Velocity.X + p.Velocity.Z*p.Velocity.Z
	if speedSq > constants.BoulderTerminalSpeed*constants.BoulderTerminalSpeed {
		scale := constants.BoulderTerminalSpeed / math.Sqrt(speedSq)
		p.Velocity.X *= scale
		p.Velocity.Z *= scale
	}
}

// trySleep puts a slow prop to rest. Boulders on live slopes stay awake.
func (s *PropSystem) trySleep(p *components.PushableObject) {
	if p.Kind == components.PropBoulder {
		angle, _ := s.ctx.Town.SlopeAngleAt(p.Position.X, p.Position.Z)
		if angle >= constants.MinRollAngle {
			return
		}
	}
	// Residual sub-epsilon velocity is kept, not zeroed: the integrator
	// skips sleeping props, so a dt=0 update changes nothing
	p.IsSleeping = true
}

// resolvePropContacts separates and bounces every overlapping prop pair
// found through the spatial index
func (s *PropSystem) resolvePropContacts() {
	for _, a := range s.props {
		if a.IsShattered || a.IsSleeping {
			continue
		}
		for _, b := range s.PropsNear(a.Position, a.Radius+constants.PropCellSize) {
			if b.ID == a.ID {
				continue
			}
			// Awake-awake pairs resolve once, in id order; an awake prop
			// always resolves against a sleeping neighbor (which never
			// reaches this loop itself)
			if !b.IsSleeping && b.ID < a.ID {
				continue
			}
			closing, hit := physics.CollideCircles(
				&a.Position, &b.Position,
				&a.Velocity, &b.Velocity,
				a.Radius, b.Radius,
				a.Mass, b.Mass,
				constants.PropRestitution,
			)
			if !hit || closing <= 0 {
				continue
			}
			a.IsSleeping = false
			b.IsSleeping = false
			intensity := physics.Intensity(closing)
			s.Impact(a, b.ID, intensity)
			s.Impact(b, a.ID, intensity)
		}
	}
}

func (s *PropSystem) rebuildIndex() {
	entries := make([]engine.Entry[*components.PushableObject], 0, len(s.props))
	for _, p := range s.props {
		if p.IsShattered {
			continue
		}
		entries = append(entries, engine.Entry[*components.PushableObject]{
			ID:       p.ID,
			Position: p.Position,
			Payload:  p,
		})
	}
	s.index.Build(entries)
}

func (s *PropSystem) remove(id string) {
	delete(s.byID, id)
	for i, p := range s.props {
		if p.ID == id {
			s.props = append(s.props[:i], s.props[i+1:]...)
			return
		}
	}
}

// retriggerInterval picks the per-pair impact spacing by prop weight
func retriggerInterval(p *components.PushableObject) float64 {
	if p.Mass >= 4 {
		return constants.ImpactRetriggerSlow
	}
	return constants.ImpactRetriggerFast
}
