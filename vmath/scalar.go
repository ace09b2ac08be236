package vmath

import (
	"math"
)

const (
	Pi  = math.Pi
	Tau = 2 * math.Pi
)

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates linearly from a to b by t in [0,1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// WrapAngle normalizes an angle to (-Pi, Pi]
func WrapAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a > Pi {
		a -= Tau
	} else if a <= -Pi {
		a += Tau
	}
	return a
}

// LerpAngle interpolates from a to b by t along the shortest arc.
// Interpolating 350° toward 10° passes through 0°, not 180°.
func LerpAngle(a, b, t float64) float64 {
	return WrapAngle(a + WrapAngle(b-a)*t)
}

// MoveTowardAngle advances a toward b by at most maxDelta radians,
// along the shortest arc
func MoveTowardAngle(a, b, maxDelta float64) float64 {
	delta := WrapAngle(b - a)
	if math.Abs(delta) <= maxDelta {
		return WrapAngle(b)
	}
	if delta < 0 {
		maxDelta = -maxDelta
	}
	return WrapAngle(a + maxDelta)
}

// Finite reports whether f is neither NaN nor Inf
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
