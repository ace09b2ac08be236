// Package systems contains the per-tick simulation systems and the
// SimContext that orchestrates them. One tick runs synchronously inside the
// host's frame callback; no core state is touched from any other goroutine.
package systems

import (
	"go.uber.org/zap"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/config"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/engine"
	"github.com/benjaminbreen/PlagueSimulator-sub002/events"
	"github.com/benjaminbreen/PlagueSimulator-sub002/physics"
	"github.com/benjaminbreen/PlagueSimulator-sub002/town"
)

// SnapshotProvider hands the core the per-tick agent list from the external
// NPC simulation. The core never mutates the snapshots.
type SnapshotProvider func() []components.AgentSnapshot

// SimContext is the explicit context object for one simulation session.
// Constructed at map/session start, torn down and rebuilt on district
// change; never a process-wide singleton.
type SimContext struct {
	Config *config.Config
	Log    *zap.Logger
	Time   engine.TimeProvider

	Town     *town.Town
	Resolver *physics.Resolver
	Player   *components.Player

	Queue     *events.EventQueue
	Router    *events.Router[*SimContext]
	Callbacks engine.Callbacks
	Limiter   *physics.ImpactLimiter

	Agents     *AgentSystem
	Locomotion *LocomotionSystem
	Rats       *RatSystem
	Props      *PropSystem

	// TickCount stamps emitted events
	TickCount int64
}

// NewSimContext wires a full session for one district. snapshots may be nil
// (no NPC collaborator: agent queries degrade to empty neighbor sets).
func NewSimContext(cfg *config.Config, log *zap.Logger, tp engine.TimeProvider,
	t *town.Town, snapshots SnapshotProvider, cb engine.Callbacks) *SimContext {

	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if tp == nil {
		tp = engine.NewMonotonicTimeProvider()
	}

	ctx := &SimContext{
		Config:    cfg,
		Log:       log,
		Time:      tp,
		Town:      t,
		Resolver:  physics.NewResolver(t.StaticIndex(), t.MaxFootprintExtent()),
		Queue:     events.NewEventQueue(),
		Callbacks: cb,
		Limiter:   physics.NewImpactLimiter(),
		Player: &components.Player{
			Radius: constants.PlayerRadius,
		},
	}
	ctx.Player.Position.Y = t.HeightAt(0, 0)
	ctx.Router = events.NewRouter[*SimContext](ctx.Queue)

	ctx.Agents = NewAgentSystem(ctx, snapshots)
	ctx.Props = NewPropSystem(ctx)
	ctx.Locomotion = NewLocomotionSystem(ctx)
	ctx.Rats = NewRatSystem(ctx)

	ctx.Router.Register(ctx.Locomotion)
	ctx.Router.Register(newCallbackBridge())

	log.Info("district loaded",
		zap.Int("map_x", t.MapX),
		zap.Int("map_y", t.MapY),
		zap.Int("footprints", len(t.Footprints)),
		zap.Int("props", ctx.Props.Count()),
	)
	return ctx
}

// Emit pushes a simulation event stamped with the current tick
func (ctx *SimContext) Emit(t events.EventType, payload any) {
	ctx.Queue.Push(events.SimEvent{
		Type:      t,
		Payload:   payload,
		Tick:      ctx.TickCount,
		Timestamp: ctx.Time.Now(),
	})
}

// Tick advances the simulation by dt seconds in the fixed order:
// input/event dispatch, dynamic index rebuild, locomotion, rats, prop
// physics. dt is clamped against pause and stall spikes.
func (ctx *SimContext) Tick(dt float64) {
	if dt < 0 {
		dt = 0
	}
	if dt > constants.MaxTickDelta {
		dt = constants.MaxTickDelta
	}
	ctx.TickCount++
	ctx.Limiter.Advance(dt, constants.ImpactRetriggerSlow)

	// Host input and last tick's deferred events
	ctx.Router.DispatchAll(ctx)

	ctx.Agents.Update(dt)
	ctx.Locomotion.Update(dt)
	ctx.Rats.Update(dt)
	ctx.Props.Update(dt)

	// Side effects emitted during this tick go straight out to the
	// collaborators; they must not re-enter the tick
	ctx.Router.DispatchAll(ctx)
}

// ChangeDistrict reseeds props and rats for a new district and resets the
// player's transient state. The static town must already be rebuilt by the
// host; this handles the core-owned state only.
func (ctx *SimContext) ChangeDistrict(t *town.Town) {
	ctx.Town = t
	ctx.Resolver = physics.NewResolver(t.StaticIndex(), t.MaxFootprintExtent())
	ctx.Limiter.Reset()
	ctx.Props.Reseed(t)
	ctx.Rats.Reseed(t, ctx.Config.World.RatCount)
	ctx.Player.Loco.Reset()
	ctx.Player.Position.Y = t.HeightAt(ctx.Player.Position.X, ctx.Player.Position.Z)

	ctx.Log.Info("district changed",
		zap.Int("map_x", t.MapX),
		zap.Int("map_y", t.MapY),
	)
}

// callbackBridge routes core events out to the collaborator callbacks.
// Fire-and-forget: nil hooks are skipped, return values do not exist.
type callbackBridge struct{}

func newCallbackBridge() *callbackBridge { return &callbackBridge{} }

func (b *callbackBridge) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventImpactPuff,
		events.EventAgentImpact,
		events.EventPropImpact,
		events.EventShatter,
		events.EventShatterLoot,
		events.EventFallDamage,
		events.EventPickup,
		events.EventDistrictChange,
	}
}

func (b *callbackBridge) HandleEvent(ctx *SimContext, ev events.SimEvent) {
	cb := &ctx.Callbacks
	switch ev.Type {
	case events.EventImpactPuff:
		if p, ok := ev.Payload.(*events.ImpactPayload); ok && cb.OnImpactPuff != nil {
			cb.OnImpactPuff(p.Position, p.Intensity)
		}
	case events.EventAgentImpact:
		if p, ok := ev.Payload.(*events.ImpactPayload); ok && cb.OnAgentImpact != nil {
			cb.OnAgentImpact(p.TargetID, p.Intensity)
		}
	case events.EventPropImpact:
		if p, ok := ev.Payload.(*events.ImpactPayload); ok && cb.OnImpactSound != nil {
			cb.OnImpactSound(p.Material, p.Intensity)
		}
	case events.EventShatter:
		if p, ok := ev.Payload.(*events.ShatterPayload); ok && cb.OnShatter != nil {
			cb.OnShatter(p.Material)
		}
	case events.EventShatterLoot:
		if p, ok := ev.Payload.(*events.ShatterLootPayload); ok && cb.OnShatterLoot != nil {
			cb.OnShatterLoot(p.Loot, p.SourceKind)
		}
	case events.EventFallDamage:
		if p, ok := ev.Payload.(*events.FallDamagePayload); ok && cb.OnFallDamage != nil {
			cb.OnFallDamage(p.Height, p.Fatal)
		}
	case events.EventPickup:
		if p, ok := ev.Payload.(*events.PickupPayload); ok && cb.OnPickup != nil {
			cb.OnPickup(p.PropID, p.Info)
		}
	case events.EventDistrictChange:
		if p, ok := ev.Payload.(*events.DistrictChangePayload); ok && cb.OnDistrictChange != nil {
			cb.OnDistrictChange(p.MapX, p.MapY)
		}
	}
}
