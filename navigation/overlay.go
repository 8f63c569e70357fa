package navigation

import (
	"time"

	"github.com/faewild/faemaze/core"
)

// CostOverlay is the temporary path-cost layer heart powers and props write
// through. Each walkable cell carries a list of source-tagged, optionally
// expiring deltas that are summed on top of the grid's base cost before
// every pathfinding query.
//
// Owned by the game loop; not safe for concurrent use.
type CostOverlay struct {
	entries map[core.Point][]costEntry
	epoch   uint64
}

type costEntry struct {
	delta     int
	expiresAt time.Time // Zero = never expires (props)
	source    string
}

// NewCostOverlay creates an empty overlay
func NewCostOverlay() *CostOverlay {
	return &CostOverlay{
		entries: make(map[core.Point][]costEntry),
	}
}

// Epoch returns a counter bumped by every mutation that can change a query
// result. Consumers holding planned paths repath when it moves.
func (o *CostOverlay) Epoch() uint64 {
	return o.epoch
}

// Add records a delta on cell. Overlapping entries accumulate; entries from
// the same source stay distinct so a later RemoveSource drops them together.
// A zero expiresAt never expires.
func (o *CostOverlay) Add(cell core.Point, delta int, expiresAt time.Time, source string) {
	if delta == 0 {
		return
	}
	o.entries[cell] = append(o.entries[cell], costEntry{
		delta:     delta,
		expiresAt: expiresAt,
		source:    source,
	})
	o.epoch++
}

// RemoveSource drops every entry tagged with source across all cells and
// returns how many entries were removed
func (o *CostOverlay) RemoveSource(source string) int {
	removed := 0
	for cell, list := range o.entries {
		kept := list[:0]
		for _, e := range list {
			if e.source == source {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(o.entries, cell)
		} else {
			o.entries[cell] = kept
		}
	}
	if removed > 0 {
		o.epoch++
	}
	return removed
}

// Sweep removes entries whose expiry has passed and returns the count.
// DeltaAt already ignores expired entries, so skipping a sweep never
// changes query results; the sweep only reclaims memory and bumps the
// epoch so path holders notice the expiry.
func (o *CostOverlay) Sweep(now time.Time) int {
	removed := 0
	for cell, list := range o.entries {
		kept := list[:0]
		for _, e := range list {
			if e.expired(now) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(o.entries, cell)
		} else {
			o.entries[cell] = kept
		}
	}
	if removed > 0 {
		o.epoch++
	}
	return removed
}

// DeltaAt sums the live deltas on cell. Expired entries contribute nothing
// even before the next Sweep runs.
func (o *CostOverlay) DeltaAt(cell core.Point, now time.Time) int {
	sum := 0
	for _, e := range o.entries[cell] {
		if !e.expired(now) {
			sum += e.delta
		}
	}
	return sum
}

// EntryCount returns the number of live entries on cell
func (o *CostOverlay) EntryCount(cell core.Point, now time.Time) int {
	n := 0
	for _, e := range o.entries[cell] {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// Cells returns every cell currently carrying at least one entry.
// Used by the renderer's overlay heat view; order is unspecified.
func (o *CostOverlay) Cells() []core.Point {
	cells := make([]core.Point, 0, len(o.entries))
	for cell := range o.entries {
		cells = append(cells, cell)
	}
	return cells
}

func (e costEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}
