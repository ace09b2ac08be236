package systems

import (
	"math"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/engine"
	"github.com/benjaminbreen/PlagueSimulator-sub002/events"
	"github.com/benjaminbreen/PlagueSimulator-sub002/physics"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// AgentSystem consumes the external NPC simulation's per-tick snapshots,
// rebuilds the dynamic agent index, and resolves agent-prop contacts so
// wandering NPCs shoulder crates and jars aside. Agent health/behavior
// state is never mutated here; impacts go back through the callback.
type AgentSystem struct {
	ctx       *SimContext
	snapshots SnapshotProvider

	index *engine.SpatialIndex[components.AgentSnapshot]

	// Per-agent accumulators gate contact processing: near agents at
	// ~12.5 Hz, far ones at ~4 Hz, with exact elapsed-time accounting
	// across the near/far boundary
	accums map[string]*engine.DtAccumulator

	current []components.AgentSnapshot
}

// NewAgentSystem creates the system; snapshots may be nil (no collaborator)
func NewAgentSystem(ctx *SimContext, snapshots SnapshotProvider) *AgentSystem {
	return &AgentSystem{
		ctx:       ctx,
		snapshots: snapshots,
		index:     engine.NewSpatialIndex[components.AgentSnapshot](constants.AgentCellSize),
		accums:    make(map[string]*engine.DtAccumulator),
	}
}

// Index returns the dynamic agent index for this tick's queries. May be
// empty; callers treat "no agents" as an empty neighbor set.
func (s *AgentSystem) Index() *engine.SpatialIndex[components.AgentSnapshot] {
	return s.index
}

// Agents returns this tick's snapshot list for read-only iteration
func (s *AgentSystem) Agents() []components.AgentSnapshot {
	return s.current
}

// Update refreshes the index and runs rate-gated agent-prop contacts
func (s *AgentSystem) Update(dt float64) {
	if s.snapshots == nil {
		s.current = nil
		s.index.Clear()
		return
	}
	s.current = s.snapshots()

	entries := make([]engine.Entry[components.AgentSnapshot], 0, len(s.current))
	seen := make(map[string]struct{}, len(s.current))
	for _, a := range s.current {
		entries = append(entries, engine.Entry[components.AgentSnapshot]{
			ID:       a.ID,
			Position: a.Position,
			Payload:  a,
		})
		seen[a.ID] = struct{}{}
	}
	s.index.Build(entries)

	// Drop accumulators for agents that left the district
	for id := range s.accums {
		if _, ok := seen[id]; !ok {
			delete(s.accums, id)
		}
	}

	playerPos := s.ctx.Player.Position
	for _, a := range s.current {
		if a.State == components.AgentDeceased {
			continue
		}
		acc, ok := s.accums[a.ID]
		if !ok {
			acc = &engine.DtAccumulator{}
			s.accums[a.ID] = acc
		}

		interval := constants.NearUpdateInterval
		if vmath.GroundDistSq(a.Position, playerPos) > constants.FarDistance*constants.FarDistance {
			interval = constants.FarUpdateInterval
		}
		banked := acc.Step(dt, interval)
		if banked == 0 {
			continue
		}
		s.shoulderProps(a)
	}
}

// shoulderProps pushes props out of an agent's footprint. The agent itself
// has infinite mass here: contact logic never displaces an NPC, only the
// prop moves and the impact intensity goes back to the NPC collaborator.
func (s *AgentSystem) shoulderProps(a components.AgentSnapshot) {
	radius := a.Radius
	if radius <= 0 {
		radius = 0.35
	}
	agentPos := a.Position
	var agentVel vmath.Vec3

	for _, p := range s.ctx.Props.PropsNear(agentPos, radius+constants.PropCellSize) {
		closing, hit := physics.CollideCircles(
			&agentPos, &p.Position,
			&agentVel, &p.Velocity,
			radius, p.Radius,
			math.Inf(1), p.Mass,
			constants.PropRestitution,
		)
		if !hit {
			continue
		}
		p.IsSleeping = false

		intensity := physics.Intensity(closing)
		if intensity < constants.ImpactIntensityFloor {
			continue
		}
		s.ctx.Props.Impact(p, a.ID, intensity)
		if s.ctx.Limiter.Allow(a.ID, "agent-contact", constants.ImpactRetriggerSlow) {
			s.ctx.Emit(events.EventAgentImpact, &events.ImpactPayload{
				SourceID:  p.ID,
				TargetID:  a.ID,
				Position:  a.Position,
				Intensity: intensity,
			})
		}
	}
}
