package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector. X/Z span the ground plane, Y is up.
type Vec3 struct {
	X, Y, Z float64
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3ClampMagnitude limits vector magnitude
func V3ClampMagnitude(v Vec3, maxMag float64) Vec3 {
	magSq := V3MagSq(v)
	if magSq <= maxMag*maxMag {
		return v
	}
	return V3Scale(V3Normalize(v), maxMag)
}

// GroundDistSq is the squared distance on the X/Z plane, ignoring height
func GroundDistSq(a, b Vec3) float64 {
	dx := b.X - a.X
	dz := b.Z - a.Z
	return dx*dx + dz*dz
}

// GroundDist is the distance on the X/Z plane, ignoring height
func GroundDist(a, b Vec3) float64 {
	return math.Sqrt(GroundDistSq(a, b))
}

// GroundNormal returns the unit X/Z direction from a toward b.
// Falls back to +X when the points coincide to prevent stacking lock.
func GroundNormal(a, b Vec3) Vec3 {
	dx := b.X - a.X
	dz := b.Z - a.Z
	mag := math.Sqrt(dx*dx + dz*dz)
	if mag == 0 {
		return Vec3{X: 1}
	}
	inv := 1.0 / mag
	return Vec3{X: dx * inv, Z: dz * inv}
}

// V3Finite reports whether all components are finite numbers
func V3Finite(v Vec3) bool {
	return Finite(v.X) && Finite(v.Y) && Finite(v.Z)
}
