package physics

// ImpactLimiter rate-limits impact events per unordered entity pair so a
// persistent contact emits one event, not one per tick. Entries are pruned
// lazily on Advance; the map stays small (active contact pairs only).
type ImpactLimiter struct {
	now      float64
	lastFire map[pairKey]float64
}

// pairKey orders the two ids so (a,b) and (b,a) share one entry
type pairKey struct {
	lo, hi string
}

func makePairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// NewImpactLimiter creates an empty limiter
func NewImpactLimiter() *ImpactLimiter {
	return &ImpactLimiter{lastFire: make(map[pairKey]float64)}
}

// Advance moves the limiter clock forward and prunes pairs that have been
// silent longer than maxInterval
func (l *ImpactLimiter) Advance(dt, maxInterval float64) {
	l.now += dt
	for k, t := range l.lastFire {
		if l.now-t > maxInterval {
			delete(l.lastFire, k)
		}
	}
}

// Allow reports whether the pair may fire again, and records the firing
// when it does. interval is the minimum re-trigger spacing in seconds.
func (l *ImpactLimiter) Allow(idA, idB string, interval float64) bool {
	k := makePairKey(idA, idB)
	if last, ok := l.lastFire[k]; ok && l.now-last < interval {
		return false
	}
	l.lastFire[k] = l.now
	return true
}

// Reset clears all pair history, used on district change
func (l *ImpactLimiter) Reset() {
	l.now = 0
	for k := range l.lastFire {
		delete(l.lastFire, k)
	}
}
