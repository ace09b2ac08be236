package systems

import (
	"fmt"
	"math"
	"testing"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/events"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// TestUpdateDtZeroIdempotent verifies two zero-dt updates change no prop
// position or velocity
func TestUpdateDtZeroIdempotent(t *testing.T) {
	ctx, _ := newTestContext(nil, nil, nil)

	moving := crate("moving", 0, 0)
	moving.Velocity = vmath.Vec3{X: 1.5, Z: -0.3}
	addProp(ctx, moving)

	sleeper := crate("sleeper", 5, 5)
	sleeper.IsSleeping = true
	addProp(ctx, sleeper)

	falling := &components.PushableObject{
		ID: "drop", Kind: components.PropDroppedItem, Material: components.MaterialWood,
		Position: vmath.Vec3{X: -3, Y: 4, Z: 2},
		Velocity: vmath.Vec3{Y: -2},
		Mass:     0.5, Radius: 0.2, Height: 0.2,
		Airborne: true,
	}
	addProp(ctx, falling)

	type snap struct{ pos, vel vmath.Vec3 }
	before := make(map[string]snap)
	for _, p := range ctx.Props.All() {
		before[p.ID] = snap{p.Position, p.Velocity}
	}

	ctx.Props.Update(0)
	ctx.Props.Update(0)

	for _, p := range ctx.Props.All() {
		b := before[p.ID]
		if p.Position != b.pos {
			t.Errorf("%s position changed under dt=0: %+v -> %+v", p.ID, b.pos, p.Position)
		}
		if p.Velocity != b.vel {
			t.Errorf("%s velocity changed under dt=0: %+v -> %+v", p.ID, b.vel, p.Velocity)
		}
	}
}

// TestCratePushAndFrictionRest is the shoved-crate scenario: an impulse of
// 5 on a mass-2 crate moves it immediately, and friction brings it below
// the sleep epsilon within a second
func TestCratePushAndFrictionRest(t *testing.T) {
	ctx, _ := newTestContext(nil, nil, nil)
	c := crate("crate", 0, 0)
	c.IsSleeping = true
	addProp(ctx, c)

	ctx.Props.ApplyImpulse("crate", vmath.Vec3{X: 5})
	if c.IsSleeping {
		t.Fatal("impulse did not wake the crate")
	}
	if c.Velocity.X <= 0 {
		t.Fatalf("impulse gave velocity.x = %.3f, want > 0", c.Velocity.X)
	}

	const dt = 0.02
	for i := 0; i < 50; i++ { // 1 second
		ctx.Props.Update(dt)
	}

	speed := math.Hypot(c.Velocity.X, c.Velocity.Z)
	if speed >= constants.SleepEpsilon {
		t.Errorf("speed after 1s of friction = %.4f, want < %.4f", speed, constants.SleepEpsilon)
	}
	if !c.IsSleeping {
		t.Error("crate below sleep epsilon but not sleeping")
	}
	if c.Position.X <= 0 {
		t.Errorf("crate never moved: x = %.4f", c.Position.X)
	}
}

// TestBoulderRollsDownhill verifies a boulder on a slope above the minimum
// roll angle wakes, accelerates downhill, and never sleeps while the slope
// holds
func TestBoulderRollsDownhill(t *testing.T) {
	// Height rises with x at tan(0.2): slope angle 0.2 rad, downhill -X
	slope := math.Tan(0.2)
	ctx, _ := newTestContext(nil, nil, func(x, z float64) float64 { return x * slope })

	b := &components.PushableObject{
		ID: "boulder", Kind: components.PropBoulder, Material: components.MaterialStone,
		Position:   vmath.Vec3{X: 0, Z: 0},
		Mass:       12, Radius: 0.6, Height: 1.2,
		IsSleeping: true,
	}
	addProp(ctx, b)

	const dt = 0.05
	for i := 0; i < 20; i++ { // 1 second
		ctx.Props.Update(dt)
		if i > 4 && b.IsSleeping {
			t.Fatalf("boulder slept on a %.2f rad slope at step %d", 0.2, i)
		}
	}

	if b.Velocity.X >= 0 {
		t.Errorf("boulder velocity.x = %.4f, want < 0 (downhill is -X)", b.Velocity.X)
	}
	if b.Position.X >= 0 {
		t.Errorf("boulder did not move downhill: x = %.4f", b.Position.X)
	}

	speed := math.Hypot(b.Velocity.X, b.Velocity.Z)
	if speed > constants.BoulderTerminalSpeed+1e-6 {
		t.Errorf("boulder exceeded terminal speed: %.3f > %.3f", speed, constants.BoulderTerminalSpeed)
	}
}

// TestShatterIdempotent verifies a jar breaks exactly once, emits loot at
// most once, and leaves all further physics
func TestShatterIdempotent(t *testing.T) {
	ctx, _ := newTestContext(nil, nil, nil)
	jar := &components.PushableObject{
		ID: "jar", Kind: components.PropJar, Material: components.MaterialClay,
		Position: vmath.Vec3{X: 1},
		Mass:     0.8, Radius: 0.3, Height: 0.6,
	}
	addProp(ctx, jar)

	// Clay breaks at intensity 0.30 with chance 0.75; distinct contact
	// partners bypass the pair rate limiter until the roll succeeds
	for i := 0; i < 64 && !jar.IsShattered; i++ {
		ctx.Props.Impact(jar, fmt.Sprintf("hit-%d", i), 0.9)
	}
	if !jar.IsShattered {
		t.Fatal("jar never shattered across 64 qualifying impacts")
	}

	// Further impacts on the shattered jar are no-ops
	for i := 0; i < 8; i++ {
		ctx.Props.Impact(jar, fmt.Sprintf("post-%d", i), 1.0)
	}

	got := drainEvents(ctx)
	if n := len(got[events.EventShatter]); n != 1 {
		t.Errorf("EventShatter fired %d times, want exactly 1", n)
	}
	if n := len(got[events.EventShatterLoot]); n > 1 {
		t.Errorf("EventShatterLoot fired %d times, want at most 1", n)
	}
	for _, ev := range got[events.EventShatterLoot] {
		p := ev.Payload.(*events.ShatterLootPayload)
		if len(p.Loot) == 0 || len(p.Loot) > constants.ShatterLootMax {
			t.Errorf("loot count %d outside 1..%d", len(p.Loot), constants.ShatterLootMax)
		}
	}

	if ctx.Props.Prop("jar") != nil {
		t.Error("shattered jar still resolvable by id")
	}
	// Only the spawned loot items may remain near the wreck
	ctx.Props.Update(0.02)
	for _, p := range ctx.Props.PropsNear(jar.Position, 1) {
		if p.Kind != components.PropDroppedItem {
			t.Errorf("shattered jar left a %v in proximity queries", p.Kind)
		}
		if p.Pickup == nil {
			t.Error("spawned loot item carries no pickup descriptor")
		}
	}
}

// TestPropContactSeparation verifies overlapping props end the tick apart
func TestPropContactSeparation(t *testing.T) {
	ctx, _ := newTestContext(nil, nil, nil)
	a := crate("a", 0, 0)
	a.Velocity = vmath.Vec3{X: 2}
	b := crate("b", 0.5, 0)
	addProp(ctx, a)
	addProp(ctx, b)

	ctx.Props.Update(0.02)

	dist := vmath.GroundDist(a.Position, b.Position)
	if dist < a.Radius+b.Radius-1e-6 {
		t.Errorf("residual interpenetration after update: dist %.4f < %.4f", dist, a.Radius+b.Radius)
	}
	if b.Velocity.X <= 0 {
		t.Errorf("struck crate gained no velocity: %.4f", b.Velocity.X)
	}
}

// TestDroppedItemBounceAndSettle verifies gravity integration, the
// material bounce and the final settle
func TestDroppedItemBounceAndSettle(t *testing.T) {
	ctx, _ := newTestContext(nil, nil, nil)
	item := &components.PushableObject{
		ID: "drop", Kind: components.PropDroppedItem, Material: components.MaterialWood,
		Position: vmath.Vec3{Y: 3},
		Velocity: vmath.Vec3{X: 0.6},
		Mass:     0.5, Radius: 0.2, Height: 0.2,
		Airborne: true,
	}
	addProp(ctx, item)

	bounced := false
	const dt = 0.01
	for i := 0; i < 500; i++ {
		ctx.Props.Update(dt)
		if item.Velocity.Y > 0 {
			bounced = true
		}
		if !item.Airborne {
			break
		}
	}

	if !bounced {
		t.Error("wooden item never bounced")
	}
	if item.Airborne {
		t.Fatal("item never settled within 5 seconds")
	}
	if item.Velocity.Y != 0 {
		t.Errorf("settled item has vertical velocity %.4f", item.Velocity.Y)
	}
	if math.Abs(item.Position.Y) > 1e-9 {
		t.Errorf("settled item rests at y = %.4f, want ground 0", item.Position.Y)
	}
}

// TestPlatformHeight verifies standing-on-prop support sampling
func TestPlatformHeight(t *testing.T) {
	ctx, _ := newTestContext(nil, nil, nil)
	addProp(ctx, crate("step", 0, 0))

	h, id := ctx.Props.PlatformHeightAt(vmath.Vec3{X: 0.1, Z: 0}, constants.PlayerRadius)
	if id != "step" {
		t.Fatalf("support prop = %q, want step", id)
	}
	if h != 0.9 {
		t.Errorf("platform height = %.3f, want 0.9", h)
	}

	h, id = ctx.Props.PlatformHeightAt(vmath.Vec3{X: 5, Z: 5}, constants.PlayerRadius)
	if id != "" || h != 0 {
		t.Errorf("empty ground reported platform (%.3f, %q)", h, id)
	}
}

// TestPickup verifies the nearest pickup-carrying prop is removed and
// reported to the inventory collaborator
func TestPickup(t *testing.T) {
	ctx, _ := newTestContext(nil, nil, nil)
	jar := &components.PushableObject{
		ID: "jar", Kind: components.PropJar, Material: components.MaterialClay,
		Position: vmath.Vec3{X: 0.5},
		Mass:     0.8, Radius: 0.3, Height: 0.6,
		Pickup:   &components.PickupInfo{ItemID: "herb_bundle", Quantity: 1},
	}
	addProp(ctx, jar)
	addProp(ctx, crate("plain", -0.4, 0)) // no pickup descriptor

	if !ctx.Props.TryPickup(vmath.Vec3{}, constants.InteractReach) {
		t.Fatal("pickup in range rejected")
	}
	if ctx.Props.Prop("jar") != nil {
		t.Error("picked-up jar still owned by the system")
	}

	got := drainEvents(ctx)
	evs := got[events.EventPickup]
	if len(evs) != 1 {
		t.Fatalf("EventPickup fired %d times, want 1", len(evs))
	}
	p := evs[0].Payload.(*events.PickupPayload)
	if p.Info.ItemID != "herb_bundle" {
		t.Errorf("pickup item = %q, want herb_bundle", p.Info.ItemID)
	}

	if ctx.Props.TryPickup(vmath.Vec3{}, constants.InteractReach) {
		t.Error("second pickup succeeded with nothing left to take")
	}
}
