// Package town owns the static side of a district: building and obstacle
// footprints, climbable accessories, the terrain height field, and the
// once-built static spatial index. All of it is immutable between district
// changes; the dynamic systems hold read-only references.
package town

import (
	"math"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/engine"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// HeightFunc samples terrain height at a ground point. Supplied by the
// world-generation collaborator; the core never generates terrain itself.
type HeightFunc func(x, z float64) float64

// Town is the static geometry of one district
type Town struct {
	MapX, MapY int
	Seed       uint64

	Footprints []components.StaticFootprint
	Climbables []components.ClimbableAccessory

	heightAt  HeightFunc
	static    *engine.SpatialIndex[*components.StaticFootprint]
	maxExtent float64
}

// New builds a town from the world-generation collaborator's data and
// indexes the footprints once. A nil height function means flat ground.
func New(mapX, mapY int, seed uint64, footprints []components.StaticFootprint,
	climbables []components.ClimbableAccessory, heightAt HeightFunc) *Town {

	t := &Town{
		MapX:       mapX,
		MapY:       mapY,
		Seed:       seed,
		Footprints: footprints,
		Climbables: climbables,
		heightAt:   heightAt,
		static:     engine.NewSpatialIndex[*components.StaticFootprint](constants.StaticCellSize),
	}

	entries := make([]engine.Entry[*components.StaticFootprint], 0, len(footprints))
	for i := range t.Footprints {
		f := &t.Footprints[i]
		if ext := f.Extent(); ext > t.maxExtent {
			t.maxExtent = ext
		}
		entries = append(entries, engine.Entry[*components.StaticFootprint]{
			ID:       f.ID,
			Position: f.Position,
			Payload:  f,
		})
	}
	t.static.Build(entries)
	return t
}

// StaticIndex returns the once-built footprint index
func (t *Town) StaticIndex() *engine.SpatialIndex[*components.StaticFootprint] {
	return t.static
}

// MaxFootprintExtent returns the widest footprint reach, used to inflate
// collision query radii
func (t *Town) MaxFootprintExtent() float64 {
	return t.maxExtent
}

// HeightAt samples terrain height; flat zero without a sampler
func (t *Town) HeightAt(x, z float64) float64 {
	if t == nil || t.heightAt == nil {
		return 0
	}
	return t.heightAt(x, z)
}

// GradientAt returns the terrain slope by central finite difference:
// (dY/dX, dY/dZ) at the given ground point
func (t *Town) GradientAt(x, z float64) (gx, gz float64) {
	if t == nil || t.heightAt == nil {
		return 0, 0
	}
	h := constants.GradientSampleStep
	gx = (t.heightAt(x+h, z) - t.heightAt(x-h, z)) / (2 * h)
	gz = (t.heightAt(x, z+h) - t.heightAt(x, z-h)) / (2 * h)
	return gx, gz
}

// SlopeAngleAt returns the steepest-descent angle in radians and the unit
// downhill direction on the ground plane. Zero angle means flat.
func (t *Town) SlopeAngleAt(x, z float64) (angle float64, downhill vmath.Vec3) {
	gx, gz := t.GradientAt(x, z)
	mag := math.Sqrt(gx*gx + gz*gz)
	if mag == 0 {
		return 0, vmath.Vec3{}
	}
	// Downhill opposes the gradient
	return math.Atan(mag), vmath.Vec3{X: -gx / mag, Z: -gz / mag}
}

// RoofHeightAt returns the roof height if p lies within a roofed building's
// footprint, else 0. Used by locomotion support sampling.
func (t *Town) RoofHeightAt(p vmath.Vec3) float64 {
	if t == nil || t.static == nil {
		return 0
	}
	best := 0.0
	for _, e := range t.static.QueryRadius(p, t.maxExtent+1) {
		f := e.Payload
		if f.RoofHeight <= 0 {
			continue
		}
		inside := false
		if f.Shape == components.FootprintCircle {
			inside = vmath.GroundDistSq(p, f.Position) <= f.Radius*f.Radius
		} else {
			inside = math.Abs(p.X-f.Position.X) <= f.HalfExtent &&
				math.Abs(p.Z-f.Position.Z) <= f.HalfExtent
		}
		if inside && f.RoofHeight > best {
			best = f.RoofHeight
		}
	}
	return best
}

// ClimbableNear returns the closest climbable accessory whose ground or
// roof anchor is within radius of p, or nil
func (t *Town) ClimbableNear(p vmath.Vec3, radius float64) *components.ClimbableAccessory {
	if t == nil {
		return nil
	}
	var best *components.ClimbableAccessory
	bestDistSq := radius * radius
	for i := range t.Climbables {
		c := &t.Climbables[i]
		d := math.Min(
			vmath.GroundDistSq(p, c.GroundAnchor),
			vmath.GroundDistSq(p, c.RoofAnchor),
		)
		if d <= bestDistSq {
			best = c
			bestDistSq = d
		}
	}
	return best
}

// Climbable resolves a non-owning accessory reference by id; nil when the
// accessory no longer exists (district changed under a climbing player)
func (t *Town) Climbable(id string) *components.ClimbableAccessory {
	if t == nil || id == "" {
		return nil
	}
	for i := range t.Climbables {
		if t.Climbables[i].ID == id {
			return &t.Climbables[i]
		}
	}
	return nil
}
