package physics

import (
	"math"
	"testing"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/engine"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

func buildResolver(footprints []components.StaticFootprint) *Resolver {
	idx := engine.NewSpatialIndex[*components.StaticFootprint](constants.StaticCellSize)
	entries := make([]engine.Entry[*components.StaticFootprint], 0, len(footprints))
	maxExtent := 0.0
	for i := range footprints {
		f := &footprints[i]
		if f.Extent() > maxExtent {
			maxExtent = f.Extent()
		}
		entries = append(entries, engine.Entry[*components.StaticFootprint]{
			ID: f.ID, Position: f.Position, Payload: f,
		})
	}
	idx.Build(entries)
	return NewResolver(idx, maxExtent)
}

// TestAxisDecomposedWallSlide is the canonical blocking scenario: a player
// of radius 0.6 at the origin moving into an obstacle circle at (1,0,0)
// radius 0.6 must stop at x just below 0.4 while the Z component of the
// same move still applies
func TestAxisDecomposedWallSlide(t *testing.T) {
	r := buildResolver([]components.StaticFootprint{
		{ID: "obs", Position: vmath.Vec3{X: 1}, Shape: components.FootprintCircle, Radius: 0.6},
	})

	// Walk straight at the obstacle in tick-sized steps
	pos := vmath.Vec3{}
	for i := 0; i < 30; i++ {
		to := pos
		to.X += 0.05
		pos = r.ResolveMove(pos, to, 0.6)
	}
	if math.Abs(pos.X-0.4) > 0.051 {
		t.Errorf("player pinned at x = %.3f, want ~0.4 (just outside the obstacle)", pos.X)
	}
	if pos.Z != 0 {
		t.Errorf("straight walk drifted in Z: %.3f", pos.Z)
	}

	// A diagonal move from the pinned position: X stays blocked, the Z
	// component of the same move still succeeds
	pinnedX := pos.X
	pos = r.ResolveMove(pos, vmath.Vec3{X: pos.X + 0.05, Z: 0.1}, 0.6)
	if pos.X != pinnedX {
		t.Errorf("blocked X axis moved: %.3f -> %.3f", pinnedX, pos.X)
	}
	if pos.Z != 0.1 {
		t.Errorf("Z component of diagonal move was blocked: z = %.3f, want 0.1", pos.Z)
	}
}

// TestNotBlockedNeverOverlaps verifies the §-property that a not-blocked
// candidate truly overlaps no footprint, across a grid of probes
func TestNotBlockedNeverOverlaps(t *testing.T) {
	footprints := []components.StaticFootprint{
		{ID: "sq", Position: vmath.Vec3{X: 3, Z: 2}, Shape: components.FootprintSquare, HalfExtent: 1.2},
		{ID: "c1", Position: vmath.Vec3{X: -2, Z: -1}, Shape: components.FootprintCircle, Radius: 0.8},
		{ID: "c2", Position: vmath.Vec3{X: 6, Z: -4}, Shape: components.FootprintCircle, Radius: 0.5},
	}
	r := buildResolver(footprints)
	const radius = 0.4

	for x := -8.0; x <= 8.0; x += 0.37 {
		for z := -8.0; z <= 8.0; z += 0.41 {
			p := vmath.Vec3{X: x, Z: z}
			if r.IsBlockedByStatic(p, radius) {
				continue
			}
			for i := range footprints {
				if overlapsFootprint(p, radius, &footprints[i]) {
					t.Fatalf("false negative at (%.2f, %.2f): not blocked but overlaps %s",
						x, z, footprints[i].ID)
				}
			}
		}
	}
}

// TestBlockedRejectsGarbage verifies NaN/Inf candidates and non-positive
// radii are treated as blocked, never indexed
func TestBlockedRejectsGarbage(t *testing.T) {
	r := buildResolver(nil)

	cases := []struct {
		name   string
		pos    vmath.Vec3
		radius float64
	}{
		{"nan x", vmath.Vec3{X: math.NaN()}, 0.5},
		{"inf z", vmath.Vec3{Z: math.Inf(-1)}, 0.5},
		{"zero radius", vmath.Vec3{}, 0},
		{"negative radius", vmath.Vec3{}, -1},
		{"nan radius", vmath.Vec3{}, math.NaN()},
	}
	for _, tc := range cases {
		if !r.IsBlockedByStatic(tc.pos, tc.radius) {
			t.Errorf("%s: garbage input accepted as unblocked", tc.name)
		}
	}
}

// TestResolveMoveNilResolver verifies a missing static index degrades to
// free movement, not a fault
func TestResolveMoveNilResolver(t *testing.T) {
	var r *Resolver
	to := vmath.Vec3{X: 2, Z: 3}
	got := r.ResolveMove(vmath.Vec3{}, to, 0.5)
	if got != to {
		t.Errorf("nil resolver blocked movement: got %+v, want %+v", got, to)
	}
}

// TestSeparationLeavesNoInterpenetration verifies post-resolution distance
// is at least the radii sum minus tolerance, for assorted mass pairings
func TestSeparationLeavesNoInterpenetration(t *testing.T) {
	cases := []struct {
		name   string
		mA, mB float64
	}{
		{"equal mass", 2, 2},
		{"heavy light", 12, 0.8},
		{"immovable b", 2, math.Inf(1)},
	}
	for _, tc := range cases {
		posA := vmath.Vec3{X: 0}
		posB := vmath.Vec3{X: 0.5}
		if !SeparateCircles(&posA, &posB, 0.4, 0.4, tc.mA, tc.mB) {
			t.Fatalf("%s: overlapping pair reported as separate", tc.name)
		}
		dist := vmath.GroundDist(posA, posB)
		if dist < 0.8-1e-6 {
			t.Errorf("%s: residual interpenetration, dist %.6f < 0.8", tc.name, dist)
		}
		if math.IsInf(tc.mB, 1) && posB.X != 0.5 {
			t.Errorf("%s: infinite-mass body moved to %.4f", tc.name, posB.X)
		}
	}
}

// TestCollideCirclesImpulse verifies a closing pair exchanges momentum and
// a separating pair only gets positional correction
func TestCollideCirclesImpulse(t *testing.T) {
	posA := vmath.Vec3{X: 0}
	posB := vmath.Vec3{X: 0.6}
	velA := vmath.Vec3{X: 3}
	velB := vmath.Vec3{}

	closing, hit := CollideCircles(&posA, &posB, &velA, &velB, 0.4, 0.4, 2, 2, 0.25)
	if !hit {
		t.Fatal("overlapping pair not detected")
	}
	if closing <= 0 {
		t.Fatalf("closing speed %.3f, want > 0", closing)
	}
	if velB.X <= 0 {
		t.Errorf("struck body gained no velocity: %.3f", velB.X)
	}
	if velA.X >= 3 {
		t.Errorf("striking body kept full velocity: %.3f", velA.X)
	}

	// Separating: overlap correction only, no impulse
	posA = vmath.Vec3{X: 0}
	posB = vmath.Vec3{X: 0.6}
	velA = vmath.Vec3{X: -1}
	velB = vmath.Vec3{X: 1}
	closing, hit = CollideCircles(&posA, &posB, &velA, &velB, 0.4, 0.4, 2, 2, 0.25)
	if !hit {
		t.Fatal("overlapping pair not detected")
	}
	if closing != 0 {
		t.Errorf("separating pair reported closing speed %.3f", closing)
	}
	if velA.X != -1 || velB.X != 1 {
		t.Errorf("separating pair velocities changed: %.3f, %.3f", velA.X, velB.X)
	}
}

// TestIntensityMapping spot-checks the closing-speed to 0..1 scale
func TestIntensityMapping(t *testing.T) {
	if got := Intensity(0); got != 0 {
		t.Errorf("Intensity(0) = %.3f", got)
	}
	if got := Intensity(constants.ImpactFullIntensitySpeed); got != 1 {
		t.Errorf("Intensity(full speed) = %.3f, want 1", got)
	}
	if got := Intensity(constants.ImpactFullIntensitySpeed * 3); got != 1 {
		t.Errorf("Intensity beyond full speed = %.3f, want clamped 1", got)
	}
}
