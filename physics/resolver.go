package physics

import (
	"math"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/engine"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// Resolver validates and corrects movement against static geometry and
// resolves dynamic circle-circle contacts. It holds a read-only view of the
// static footprint index; a nil index degrades to "nothing blocks".
type Resolver struct {
	static *engine.SpatialIndex[*components.StaticFootprint]

	// maxExtent is the widest footprint reach in the index, inflating the
	// query radius so no overlapping footprint is missed
	maxExtent float64
}

// NewResolver creates a resolver over a built static index. maxExtent must
// be the largest footprint Extent() in the index.
func NewResolver(static *engine.SpatialIndex[*components.StaticFootprint], maxExtent float64) *Resolver {
	if maxExtent <= 0 || !vmath.Finite(maxExtent) {
		maxExtent = 1
	}
	return &Resolver{static: static, maxExtent: maxExtent}
}

// overlapsFootprint tests a candidate against one footprint. Squares are
// inflated by the entity radius (circle-vs-AABB); round obstacles test the
// candidate's center against the footprint circle, whose radius already
// pads the visual obstacle.
func overlapsFootprint(p vmath.Vec3, radius float64, f *components.StaticFootprint) bool {
	if f.Shape == components.FootprintCircle {
		return vmath.GroundDistSq(p, f.Position) < f.Radius*f.Radius
	}
	// Closest point on the square to the circle center
	cx := vmath.Clamp(p.X, f.Position.X-f.HalfExtent, f.Position.X+f.HalfExtent)
	cz := vmath.Clamp(p.Z, f.Position.Z-f.HalfExtent, f.Position.Z+f.HalfExtent)
	dx := p.X - cx
	dz := p.Z - cz
	return dx*dx+dz*dz < radius*radius
}

// IsBlockedByStatic reports whether the candidate circle overlaps any static
// footprint. Non-finite candidates and non-positive radii are rejected as
// blocked so numeric garbage never propagates into the index.
// Entities above a footprint's roof pass over it rather than colliding.
func (r *Resolver) IsBlockedByStatic(candidate vmath.Vec3, radius float64) bool {
	if !vmath.V3Finite(candidate) || radius <= 0 || !vmath.Finite(radius) {
		return true
	}
	if r == nil || r.static == nil {
		return false
	}

	for _, e := range r.static.QueryRadius(candidate, radius+r.maxExtent) {
		f := e.Payload
		if f.RoofHeight > 0 && candidate.Y >= f.RoofHeight {
			continue
		}
		if overlapsFootprint(candidate, radius, f) {
			return true
		}
	}
	return false
}

// ResolveMove applies a move axis by axis: the full X component with Z held,
// then the Z component from the possibly-accepted X. Each axis is
// independently accepted or rejected, which yields wall sliding without a
// swept solver. Known limitation: a displacement larger than an obstacle's
// extent in one tick can tunnel through it.
func (r *Resolver) ResolveMove(from, to vmath.Vec3, radius float64) vmath.Vec3 {
	if !vmath.V3Finite(to) {
		return from
	}

	result := from
	result.Y = to.Y

	candidate := result
	candidate.X = to.X
	if !r.IsBlockedByStatic(candidate, radius) {
		result.X = to.X
	}

	candidate = result
	candidate.Z = to.Z
	if !r.IsBlockedByStatic(candidate, radius) {
		result.Z = to.Z
	}

	return result
}

// SeparateCircles pushes two overlapping ground circles apart proportional
// to inverse mass. An infinite mass never moves. Returns true when the pair
// was overlapping.
func SeparateCircles(posA, posB *vmath.Vec3, rA, rB, mA, mB float64) bool {
	distSq := vmath.GroundDistSq(*posA, *posB)
	limit := rA + rB
	if distSq >= limit*limit {
		return false
	}

	dist := math.Sqrt(distSq)
	overlap := limit - dist
	n := vmath.GroundNormal(*posA, *posB)

	invA := invMass(mA)
	invB := invMass(mB)
	invSum := invA + invB
	if invSum == 0 {
		return true
	}

	posA.X -= n.X * overlap * (invA / invSum)
	posA.Z -= n.Z * overlap * (invA / invSum)
	posB.X += n.X * overlap * (invB / invSum)
	posB.Z += n.Z * overlap * (invB / invSum)
	return true
}

// CollideCircles resolves a dynamic-dynamic contact: positional separation
// plus an impulse exchange when the relative velocity along the contact
// normal is closing. Returns the closing speed (0 when separating) and
// whether the circles touched at all.
func CollideCircles(
	posA, posB, velA, velB *vmath.Vec3,
	rA, rB, mA, mB, restitution float64,
) (closing float64, hit bool) {
	if !SeparateCircles(posA, posB, rA, rB, mA, mB) {
		return 0, false
	}

	n := vmath.GroundNormal(*posA, *posB)
	relVX := velA.X - velB.X
	relVZ := velA.Z - velB.Z
	vn := relVX*n.X + relVZ*n.Z

	// Already separating: positional correction was enough
	if vn <= 0 {
		return 0, true
	}

	invA := invMass(mA)
	invB := invMass(mB)
	invSum := invA + invB
	if invSum == 0 {
		return vn, true
	}

	j := (1 + restitution) * vn / invSum
	velA.X -= j * invA * n.X
	velA.Z -= j * invA * n.Z
	velB.X += j * invB * n.X
	velB.Z += j * invB * n.Z

	return vn, true
}

// Intensity maps a closing speed to the 0..1 impact intensity scale
func Intensity(closingSpeed float64) float64 {
	return vmath.Clamp01(closingSpeed / constants.ImpactFullIntensitySpeed)
}

func invMass(m float64) float64 {
	if m <= 0 || math.IsInf(m, 1) {
		return 0
	}
	return 1 / m
}
