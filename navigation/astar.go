package navigation

import (
	"time"

	"github.com/faewild/faemaze/core"
	"github.com/faewild/faemaze/maze"
)

// Pathfinding over the maze grid with the cost overlay applied additively.
// Cardinal movement only. Costs are charged for entering a cell; the
// effective cost is clamped to a floor of 1 so negative overlays can
// cheapen a tile but never make it free, and walls stay impassable no
// matter what the overlay says.

const minStepCost = 1

// StepCost returns the effective cost of entering cell, 0 for walls
func StepCost(g *maze.Grid, o *CostOverlay, cell core.Point, now time.Time) int {
	base := g.BaseCost(cell)
	if base == 0 {
		return 0
	}
	c := base + o.DeltaAt(cell, now)
	if c < minStepCost {
		c = minStepCost
	}
	return c
}

// PathResult carries the outcome of a FindPath query
type PathResult struct {
	Cells []core.Point // From start to goal inclusive; nil if not found
	Cost  int          // Sum of entry costs along the path (start not charged)
	Found bool
}

// FindPath runs A* from start to goal. The heuristic is plain Manhattan
// distance: with entry costs clamped to >= 1 it stays admissible under
// arbitrary negative overlays. Ties break on heap insertion order, so the
// result is deterministic for a fixed grid and overlay state.
func FindPath(g *maze.Grid, o *CostOverlay, start, goal core.Point, now time.Time) PathResult {
	if !g.Walkable(start) || !g.Walkable(goal) {
		return PathResult{}
	}
	if start == goal {
		return PathResult{Cells: []core.Point{start}, Found: true}
	}

	size := g.Width * g.Height
	w := g.Width

	gScore := make([]int, size)
	cameFrom := make([]int32, size)
	closed := make([]bool, size)
	for i := range gScore {
		gScore[i] = -1
		cameFrom[i] = -1
	}

	startIdx := g.Index(start)
	goalIdx := g.Index(goal)
	gScore[startIdx] = 0

	var open searchHeap
	open.push(startIdx, core.Manhattan(start, goal))

	for len(open.nodes) > 0 {
		curr := open.pop()
		if closed[curr.idx] {
			continue // Stale entry
		}
		closed[curr.idx] = true

		if curr.idx == goalIdx {
			return PathResult{
				Cells: reconstruct(g, cameFrom, goalIdx, startIdx),
				Cost:  gScore[goalIdx],
				Found: true,
			}
		}

		cx := curr.idx % w
		cy := curr.idx / w

		for _, d := range core.CardinalDirs {
			next := core.Point{X: cx + d.X, Y: cy + d.Y}
			step := StepCost(g, o, next, now)
			if step == 0 {
				continue // Wall or out of bounds
			}

			nIdx := g.Index(next)
			tentative := gScore[curr.idx] + step

			if gScore[nIdx] == -1 || tentative < gScore[nIdx] {
				gScore[nIdx] = tentative
				cameFrom[nIdx] = int32(curr.idx)
				open.push(nIdx, tentative+core.Manhattan(next, goal))
			}
		}
	}

	return PathResult{}
}

func reconstruct(g *maze.Grid, cameFrom []int32, goalIdx, startIdx int) []core.Point {
	count := 1
	for idx := goalIdx; idx != startIdx; idx = int(cameFrom[idx]) {
		count++
	}

	cells := make([]core.Point, count)
	idx := goalIdx
	for i := count - 1; i >= 0; i-- {
		cells[i] = core.Point{X: idx % g.Width, Y: idx / g.Width}
		if idx != startIdx {
			idx = int(cameFrom[idx])
		}
	}
	return cells
}

// --- Min-heap for A* ---

type searchNode struct {
	idx int
	f   int
	seq uint64 // Insertion order tie-break for deterministic paths
}

type searchHeap struct {
	nodes []searchNode
	seq   uint64
}

func (h *searchHeap) less(i, j int) bool {
	a, b := h.nodes[i], h.nodes[j]
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

func (h *searchHeap) push(idx, f int) {
	h.seq++
	h.nodes = append(h.nodes, searchNode{idx: idx, f: f, seq: h.seq})

	// Sift up
	i := len(h.nodes) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.nodes[parent], h.nodes[i] = h.nodes[i], h.nodes[parent]
		i = parent
	}
}

func (h *searchHeap) pop() searchNode {
	n := len(h.nodes)
	e := h.nodes[0]
	h.nodes[0] = h.nodes[n-1]
	h.nodes = h.nodes[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(h.nodes) {
			break
		}
		smallest := left
		if right := left + 1; right < len(h.nodes) && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			break
		}
		h.nodes[i], h.nodes[smallest] = h.nodes[smallest], h.nodes[i]
		i = smallest
	}
	return e
}
