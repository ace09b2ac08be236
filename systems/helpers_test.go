package systems

import (
	"time"

	"go.uber.org/zap"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/config"
	"github.com/benjaminbreen/PlagueSimulator-sub002/engine"
	"github.com/benjaminbreen/PlagueSimulator-sub002/events"
	"github.com/benjaminbreen/PlagueSimulator-sub002/town"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// testAgents is a mutable stand-in for the NPC-simulation collaborator
type testAgents struct {
	list []components.AgentSnapshot
}

func (a *testAgents) snapshots() []components.AgentSnapshot {
	return a.list
}

// newTestContext builds a session over an empty flat (or custom-height)
// town, with the seeded props and rats cleared so each test controls its
// exact world contents
func newTestContext(footprints []components.StaticFootprint,
	climbables []components.ClimbableAccessory, heightAt town.HeightFunc) (*SimContext, *testAgents) {

	agents := &testAgents{}
	t := town.New(0, 0, 99, footprints, climbables, heightAt)
	tp := engine.NewMockTimeProvider(time.Unix(0, 0))
	ctx := NewSimContext(config.Default(), zap.NewNop(), tp, t, agents.snapshots, engine.Callbacks{})

	clearWorld(ctx)
	return ctx, agents
}

// clearWorld removes the procedurally seeded props and rats
func clearWorld(ctx *SimContext) {
	ctx.Props.props = nil
	for id := range ctx.Props.byID {
		delete(ctx.Props.byID, id)
	}
	ctx.Props.rebuildIndex()
	ctx.Rats.rats = nil
}

// addProp registers a prop under the system's ownership
func addProp(ctx *SimContext, p *components.PushableObject) {
	ctx.Props.props = append(ctx.Props.props, p)
	ctx.Props.byID[p.ID] = p
	ctx.Props.rebuildIndex()
}

// drainEvents consumes the queue and tallies events by type
func drainEvents(ctx *SimContext) map[events.EventType][]events.SimEvent {
	out := make(map[events.EventType][]events.SimEvent)
	for _, ev := range ctx.Queue.Consume() {
		out[ev.Type] = append(out[ev.Type], ev)
	}
	return out
}

// crate builds a standard wooden crate for collision tests
func crate(id string, x, z float64) *components.PushableObject {
	return &components.PushableObject{
		ID:       id,
		Kind:     components.PropCrate,
		Material: components.MaterialWood,
		Position: vmath.Vec3{X: x, Z: z},
		Mass:     2,
		Radius:   0.45,
		Height:   0.9,
	}
}
