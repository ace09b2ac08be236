package engine

import (
	"math"

	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// cellKey packs a 2D cell coordinate into a single map key
type cellKey struct {
	cx, cz int32
}

// Entry is one indexed item: a stable id, a world position and a payload
type Entry[T any] struct {
	ID       string
	Position vmath.Vec3
	Payload  T
}

// SpatialIndex is a uniform-grid hash over the ground plane for sub-linear
// proximity queries. Dynamic sets rebuild wholesale each tick; static sets
// build once per map load. There is no removal API: rebuilding trades a
// small constant overhead for the elimination of stale-entry bugs.
type SpatialIndex[T any] struct {
	cellSize float64
	buckets  map[cellKey][]Entry[T]
	count    int
}

// NewSpatialIndex creates an index with the given cell size. Cell size is
// chosen as roughly the largest expected query radius so each query touches
// a small constant number of cells (typically 9).
func NewSpatialIndex[T any](cellSize float64) *SpatialIndex[T] {
	if cellSize <= 0 || !vmath.Finite(cellSize) {
		cellSize = 1
	}
	return &SpatialIndex[T]{
		cellSize: cellSize,
		buckets:  make(map[cellKey][]Entry[T]),
	}
}

func (s *SpatialIndex[T]) cellOf(p vmath.Vec3) cellKey {
	return cellKey{
		cx: int32(math.Floor(p.X / s.cellSize)),
		cz: int32(math.Floor(p.Z / s.cellSize)),
	}
}

// Build replaces all buckets with the given entries. Entries with
// non-finite positions are skipped rather than poisoning the grid.
func (s *SpatialIndex[T]) Build(entries []Entry[T]) {
	for k := range s.buckets {
		delete(s.buckets, k)
	}
	s.count = 0
	for _, e := range entries {
		if !vmath.V3Finite(e.Position) {
			continue
		}
		k := s.cellOf(e.Position)
		s.buckets[k] = append(s.buckets[k], e)
		s.count++
	}
}

// QueryRadius returns every entry whose cell lies within
// ceil(radius/cellSize) cells of center's cell. The result is a superset of
// the true radius set; callers must re-check exact distance.
// A nil or never-built index returns an empty result, never panics.
func (s *SpatialIndex[T]) QueryRadius(center vmath.Vec3, radius float64) []Entry[T] {
	if s == nil || s.count == 0 {
		return nil
	}
	if radius <= 0 || !vmath.Finite(radius) || !vmath.V3Finite(center) {
		return nil
	}

	reach := int32(math.Ceil(radius / s.cellSize))
	ck := s.cellOf(center)

	var result []Entry[T]
	for dz := -reach; dz <= reach; dz++ {
		for dx := -reach; dx <= reach; dx++ {
			bucket, ok := s.buckets[cellKey{cx: ck.cx + dx, cz: ck.cz + dz}]
			if !ok {
				continue
			}
			result = append(result, bucket...)
		}
	}
	return result
}

// Len returns the number of indexed entries
func (s *SpatialIndex[T]) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// CellSize returns the grid cell size in world units
func (s *SpatialIndex[T]) CellSize() float64 {
	return s.cellSize
}

// Clear removes all entries
func (s *SpatialIndex[T]) Clear() {
	s.Build(nil)
}
