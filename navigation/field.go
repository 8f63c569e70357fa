package navigation

import (
	"time"

	"github.com/faewild/faemaze/core"
	"github.com/faewild/faemaze/maze"
)

const distUnreachable = 1<<30 - 1

// DistanceField stores weighted distances from a single origin (the heart)
// over the grid with the overlay applied. Fleeing visitors climb the field;
// the renderer's overlay view reads it for shading.
type DistanceField struct {
	Width, Height int
	Distances     []int

	// Cache state
	Origin core.Point
	Valid  bool // False if field needs recomputation

	// Reusable heap buffer to reduce allocations across recomputes
	heap searchHeap
}

// NewDistanceField creates an empty field for the given dimensions
func NewDistanceField(width, height int) *DistanceField {
	return &DistanceField{
		Width:     width,
		Height:    height,
		Distances: make([]int, width*height),
		Origin:    core.Point{X: -1, Y: -1},
	}
}

// Invalidate marks the field for recomputation
func (f *DistanceField) Invalidate() {
	f.Valid = false
}

// DistanceAt returns the weighted distance from the origin, -1 if the cell
// is unreachable or the field is stale
func (f *DistanceField) DistanceAt(p core.Point) int {
	if !f.Valid || p.X < 0 || p.Y < 0 || p.X >= f.Width || p.Y >= f.Height {
		return -1
	}
	d := f.Distances[p.Y*f.Width+p.X]
	if d >= distUnreachable {
		return -1
	}
	return d
}

// Compute runs weighted Dijkstra outward from origin using effective step
// costs (base + overlay, clamped)
func (f *DistanceField) Compute(g *maze.Grid, o *CostOverlay, origin core.Point, now time.Time) {
	if !g.InBounds(origin) || !g.Walkable(origin) {
		f.Valid = false
		return
	}

	size := f.Width * f.Height
	w := f.Width
	for i := 0; i < size; i++ {
		f.Distances[i] = distUnreachable
	}

	originIdx := origin.Y*w + origin.X
	f.Distances[originIdx] = 0

	f.heap.nodes = f.heap.nodes[:0]
	f.heap.seq = 0
	f.heap.push(originIdx, 0)

	for len(f.heap.nodes) > 0 {
		entry := f.heap.pop()
		if entry.f > f.Distances[entry.idx] {
			continue // Stale entry
		}

		curr := core.Point{X: entry.idx % w, Y: entry.idx / w}

		for _, d := range core.CardinalDirs {
			next := curr.Add(d)
			step := StepCost(g, o, next, now)
			if step == 0 {
				continue
			}

			nIdx := next.Y*w + next.X
			if newDist := entry.f + step; newDist < f.Distances[nIdx] {
				f.Distances[nIdx] = newDist
				f.heap.push(nIdx, newDist)
			}
		}
	}

	f.Origin = origin
	f.Valid = true
}

// FleeStep returns the walkable neighbor of p farthest from the origin,
// false when every neighbor is closer or the field is stale. Ties resolve
// in fixed direction order, keeping flight deterministic.
func (f *DistanceField) FleeStep(g *maze.Grid, p core.Point) (core.Point, bool) {
	best := f.DistanceAt(p)
	if best < 0 {
		return core.Point{}, false
	}

	found := false
	var pick core.Point
	for _, d := range core.CardinalDirs {
		next := p.Add(d)
		if !g.Walkable(next) {
			continue
		}
		if dist := f.DistanceAt(next); dist > best {
			best = dist
			pick = next
			found = true
		}
	}
	return pick, found
}

// FieldCache throttles distance field recomputation
// The field only rebuilds when the overlay epoch moved, the origin changed,
// or MarkDirty was called, and never more often than minTicks ticks apart
type FieldCache struct {
	Field *DistanceField

	TicksSinceCompute      int
	MinTicksBetweenCompute int

	lastEpoch uint64

	// PendingUpdate latches true on any state change, cleared after compute
	PendingUpdate bool
}

// NewFieldCache creates a cache with the given throttle
func NewFieldCache(width, height, minTicks int) *FieldCache {
	return &FieldCache{
		Field:                  NewDistanceField(width, height),
		TicksSinceCompute:      minTicks, // Allow immediate first compute
		MinTicksBetweenCompute: minTicks,
		PendingUpdate:          true, // Force initial compute
	}
}

// MarkDirty forces recomputation on the next eligible tick
func (c *FieldCache) MarkDirty() {
	c.PendingUpdate = true
}

// Update recomputes the field when needed; returns true if it did
func (c *FieldCache) Update(g *maze.Grid, o *CostOverlay, origin core.Point, now time.Time) bool {
	c.TicksSinceCompute++

	if o.Epoch() != c.lastEpoch || origin != c.Field.Origin {
		c.PendingUpdate = true
	}

	if (c.PendingUpdate && c.TicksSinceCompute >= c.MinTicksBetweenCompute) || !c.Field.Valid {
		c.Field.Compute(g, o, origin, now)
		c.lastEpoch = o.Epoch()
		c.TicksSinceCompute = 0
		c.PendingUpdate = false
		return true
	}
	return false
}
