package navigation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/faewild/faemaze/core"
	"github.com/faewild/faemaze/maze"
)

// Ring layout: two routes from the gate to the heart. The short route runs
// along the top corridor, the long one around the bottom.
const ringLayout = `#G#####
#.....#
#.###.#
#.#H..#
#.###.#
#.....#
#######`

func ringGrid(t *testing.T) *maze.Grid {
	t.Helper()
	g, err := maze.ParseLayout([]byte(ringLayout))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	return g
}

func TestFindPathPrefersShortRoute(t *testing.T) {
	g := ringGrid(t)
	o := NewCostOverlay()

	res := FindPath(g, o, core.Point{X: 1, Y: 0}, g.Heart, t0)
	if !res.Found {
		t.Fatal("no path found")
	}

	want := []core.Point{
		{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1},
		{X: 5, Y: 1}, {X: 5, Y: 2}, {X: 5, Y: 3}, {X: 4, Y: 3}, {X: 3, Y: 3},
	}
	if diff := cmp.Diff(want, res.Cells); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if res.Cost != 90 {
		t.Errorf("cost = %d, want 90", res.Cost)
	}
}

func TestFindPathDivertsAroundCostlyOverlay(t *testing.T) {
	g := ringGrid(t)
	o := NewCostOverlay()

	// Make the top corridor more expensive than the detour
	o.Add(core.Point{X: 3, Y: 1}, 50, t0.Add(time.Minute), "mistveil-1")

	res := FindPath(g, o, core.Point{X: 1, Y: 0}, g.Heart, t0)
	if !res.Found {
		t.Fatal("no path found")
	}
	for _, c := range res.Cells {
		if (c == core.Point{X: 3, Y: 1}) {
			t.Fatalf("path crosses the veiled cell: %v", res.Cells)
		}
	}
	if res.Cost != 130 {
		t.Errorf("detour cost = %d, want 130", res.Cost)
	}

	// Once the overlay expires the short route wins again
	after := t0.Add(2 * time.Minute)
	res = FindPath(g, o, core.Point{X: 1, Y: 0}, g.Heart, after)
	if res.Cost != 90 {
		t.Errorf("cost after expiry = %d, want 90", res.Cost)
	}
}

func TestFindPathFollowsNegativeOverlay(t *testing.T) {
	g := ringGrid(t)
	o := NewCostOverlay()

	// Lure trail down the long route; each luring cell clamps to cost 1
	trail := []core.Point{
		{X: 1, Y: 2}, {X: 1, Y: 3}, {X: 1, Y: 4}, {X: 1, Y: 5}, {X: 2, Y: 5},
		{X: 3, Y: 5}, {X: 4, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 4},
	}
	for _, c := range trail {
		o.Add(c, -999, t0.Add(time.Minute), "lure-1")
	}

	res := FindPath(g, o, core.Point{X: 1, Y: 0}, g.Heart, t0)
	if !res.Found {
		t.Fatal("no path found")
	}
	// 10 into (1,1), 9 x 1 along the trail, then 10+10+10 to the heart
	if res.Cost != 49 {
		t.Errorf("lured cost = %d, want 49", res.Cost)
	}
	for _, c := range trail {
		if !containsPoint(res.Cells, c) {
			t.Fatalf("lured path skips trail cell %v: %v", c, res.Cells)
		}
	}
}

func TestNegativeOverlayNeverOpensWalls(t *testing.T) {
	g := ringGrid(t)
	o := NewCostOverlay()

	wall := core.Point{X: 2, Y: 3}
	o.Add(wall, -1000, t0.Add(time.Minute), "lure-1")

	if got := StepCost(g, o, wall, t0); got != 0 {
		t.Fatalf("StepCost on wall = %d, want 0", got)
	}

	res := FindPath(g, o, core.Point{X: 1, Y: 0}, g.Heart, t0)
	if !res.Found {
		t.Fatal("no path found")
	}
	if containsPoint(res.Cells, wall) {
		t.Fatalf("path crosses a wall: %v", res.Cells)
	}
}

func TestStepCostClampFloor(t *testing.T) {
	g := ringGrid(t)
	o := NewCostOverlay()
	cell := core.Point{X: 3, Y: 1}

	o.Add(cell, -maze.CostFloor, t0.Add(time.Minute), "lure-1")
	if got := StepCost(g, o, cell, t0); got != 1 {
		t.Errorf("StepCost = %d, want clamp floor 1", got)
	}
}

func TestFindPathEdgeCases(t *testing.T) {
	g := ringGrid(t)
	o := NewCostOverlay()

	// Start equals goal
	res := FindPath(g, o, g.Heart, g.Heart, t0)
	if !res.Found || len(res.Cells) != 1 || res.Cost != 0 {
		t.Errorf("self path = %+v", res)
	}

	// Start on a wall
	if res := FindPath(g, o, core.Point{X: 0, Y: 0}, g.Heart, t0); res.Found {
		t.Error("found path from a wall")
	}

	// Unreachable goal: box the heart in
	sealed := g.Clone()
	sealed.SetTile(core.Point{X: 4, Y: 3}, maze.TileWall)
	if res := FindPath(sealed, o, core.Point{X: 1, Y: 0}, sealed.Heart, t0); res.Found {
		t.Error("found path into a sealed chamber")
	}
}

func TestFindPathDeterministic(t *testing.T) {
	g := ringGrid(t)
	o := NewCostOverlay()
	o.Add(core.Point{X: 4, Y: 1}, 7, t0.Add(time.Minute), "s1")
	o.Add(core.Point{X: 5, Y: 4}, -3, t0.Add(time.Minute), "s2")

	first := FindPath(g, o, core.Point{X: 1, Y: 0}, g.Heart, t0)
	for i := 0; i < 10; i++ {
		again := FindPath(g, o, core.Point{X: 1, Y: 0}, g.Heart, t0)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func containsPoint(cells []core.Point, p core.Point) bool {
	for _, c := range cells {
		if c == p {
			return true
		}
	}
	return false
}
