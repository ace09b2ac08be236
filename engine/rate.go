package engine

// DtAccumulator implements reduced-rate updates for distant entities as an
// explicit accumulator over a fixed interval, not skipped frames. When the
// accumulator crosses the interval, the full banked dt is returned, so total
// elapsed simulated time is exact even when an entity crosses the near/far
// boundary and its interval changes.
type DtAccumulator struct {
	accum float64
}

// Step banks dt and returns the full accumulated time when it crosses
// interval, or 0 when the entity should not integrate this tick
func (a *DtAccumulator) Step(dt, interval float64) float64 {
	a.accum += dt
	if a.accum < interval {
		return 0
	}
	banked := a.accum
	a.accum = 0
	return banked
}

// Pending returns the currently banked time
func (a *DtAccumulator) Pending() float64 {
	return a.accum
}
