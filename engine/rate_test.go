package engine

import (
	"math"
	"testing"
)

// TestAccumulatorPreservesElapsedTime verifies that the banked dt handed
// back over many steps sums to exactly the wall time fed in, with no drift
func TestAccumulatorPreservesElapsedTime(t *testing.T) {
	var acc DtAccumulator
	const dt = 0.016
	const interval = 0.25

	total := 0.0
	integrated := 0.0
	for i := 0; i < 1000; i++ {
		total += dt
		integrated += acc.Step(dt, interval)
	}
	integrated += acc.Pending()

	if math.Abs(total-integrated) > 1e-9 {
		t.Errorf("elapsed time drifted: fed %.9f, accounted %.9f", total, integrated)
	}
}

// TestAccumulatorBoundaryCrossing verifies no time is lost when the
// interval changes mid-stream, as when an entity crosses the near/far
// distance boundary
func TestAccumulatorBoundaryCrossing(t *testing.T) {
	var acc DtAccumulator
	const dt = 0.02

	total := 0.0
	integrated := 0.0
	for i := 0; i < 500; i++ {
		interval := 0.08 // near rate
		if i%37 < 18 {
			interval = 0.25 // far rate
		}
		total += dt
		integrated += acc.Step(dt, interval)
	}
	integrated += acc.Pending()

	if math.Abs(total-integrated) > 1e-9 {
		t.Errorf("boundary crossing lost time: fed %.9f, accounted %.9f", total, integrated)
	}
}

// TestAccumulatorHoldsBelowInterval verifies no integration fires before
// the interval is banked
func TestAccumulatorHoldsBelowInterval(t *testing.T) {
	var acc DtAccumulator
	if got := acc.Step(0.05, 0.25); got != 0 {
		t.Errorf("Step below interval returned %.3f, want 0", got)
	}
	if got := acc.Step(0.05, 0.25); got != 0 {
		t.Errorf("Step below interval returned %.3f, want 0", got)
	}
	got := acc.Step(0.2, 0.25)
	if math.Abs(got-0.3) > 1e-12 {
		t.Errorf("Step crossing interval returned %.3f, want full banked 0.3", got)
	}
}
