package maze

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/faewild/faemaze/core"
)

// GenConfig controls procedural layout generation
type GenConfig struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze/tree) to 1.0 (no dead ends).
	// Higher values add cycles. Plaza/pillar constraints take precedence.
	Braiding float64

	// Gates carved into the outer boundary (minimum 1)
	Gates int

	// Terrain scattering probabilities applied to floor tiles
	MossDensity  float64
	BrierDensity float64

	Seed int64 // 0 = derive from wall clock
}

// Generate carves a stochastic maze with the heart at the center and the
// requested number of boundary gates. The result always validates: every
// gate reaches the heart.
func Generate(cfg GenConfig) (*Grid, error) {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)
	if rows < 7 || cols < 7 {
		return nil, fmt.Errorf("generate: %dx%d too small, need at least 7x7", cfg.Width, cfg.Height)
	}
	gates := cfg.Gates
	if gates < 1 {
		gates = 1
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := NewGrid(cols, rows)

	// Heart sits on the center odd node
	heart := core.Point{X: (cols / 2) | 1, Y: (rows / 2) | 1}

	// Carve a uniform spanning tree from the heart outward
	carveBacktracker(g, heart, rng)

	// Introduce cycles while preventing plazas and pillars
	if cfg.Braiding > 0 {
		applyBraiding(g, cfg.Braiding, rng)
	}

	// Cut gates where a boundary wall touches an interior passage
	if err := cutGates(g, gates, rng); err != nil {
		return nil, err
	}

	// Terrain scattering over plain floor
	scatterTerrain(g, cfg.MossDensity, cfg.BrierDensity, rng)

	g.Heart = heart
	g.SetTile(heart, TileHeart)

	if !g.Reachable(g.Gates...) {
		// Carving starts at the heart and gates open onto carved passages,
		// so this only trips on a generator bug
		return nil, fmt.Errorf("generate: disconnected layout (seed %d)", seed)
	}
	return g, nil
}

// --- Core algorithms ---

func carveBacktracker(g *Grid, start core.Point, rng *rand.Rand) {
	stack := []core.Point{start}
	g.SetTile(start, TileFloor)

	jumps := [4]core.Point{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]core.Point, 0, 4)

		for _, d := range jumps {
			next := curr.Add(d)
			// Leave a 1-cell wall border
			if next.X > 0 && next.X < g.Width-1 && next.Y > 0 && next.Y < g.Height-1 {
				if g.TileAt(next) == TileWall {
					candidates = append(candidates, d)
				}
			}
		}

		if len(candidates) > 0 {
			d := candidates[rng.Intn(len(candidates))]
			wall := core.Point{X: curr.X + d.X/2, Y: curr.Y + d.Y/2}
			next := curr.Add(d)

			g.SetTile(wall, TileFloor)
			g.SetTile(next, TileFloor)
			stack = append(stack, next)
		} else {
			stack = stack[:len(stack)-1]
		}
	}
}

func applyBraiding(g *Grid, probability float64, rng *rand.Rand) {
	// Iterate over odd nodes (rooms)
	for y := 1; y < g.Height-1; y += 2 {
		for x := 1; x < g.Width-1; x += 2 {
			node := core.Point{X: x, Y: y}
			if g.TileAt(node) == TileWall {
				continue
			}

			// A node is a dead end if it has exactly one open neighbor
			exits := 0
			for _, d := range core.CardinalDirs {
				if g.Walkable(node.Add(d)) {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			// Find walls whose removal loops back into the maze
			candidates := make([]core.Point, 0, 4)
			jumps := [4]core.Point{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}}
			for _, jd := range jumps {
				neighbor := node.Add(jd)
				wall := core.Point{X: x + jd.X/2, Y: y + jd.Y/2}

				if !g.InBounds(neighbor) || g.OnBoundary(wall) {
					continue
				}
				if g.Walkable(neighbor) && g.TileAt(wall) == TileWall {
					if canSafelyRemoveWall(g, wall) {
						candidates = append(candidates, wall)
					}
				}
			}

			if len(candidates) > 0 {
				g.SetTile(candidates[rng.Intn(len(candidates))], TileFloor)
			}
		}
	}
}

// canSafelyRemoveWall checks if opening the wall at w creates prohibited topology:
// plazas (2x2 open areas) or pillars (isolated wall cells)
func canSafelyRemoveWall(g *Grid, w core.Point) bool {
	isOpen := func(x, y int) bool {
		return g.Walkable(core.Point{X: x, Y: y})
	}
	x, y := w.X, w.Y

	// --- No plazas: check the four 2x2 quadrants containing w ---
	if isOpen(x-1, y-1) && isOpen(x, y-1) && isOpen(x-1, y) {
		return false
	}
	if isOpen(x, y-1) && isOpen(x+1, y-1) && isOpen(x+1, y) {
		return false
	}
	if isOpen(x-1, y) && isOpen(x-1, y+1) && isOpen(x, y+1) {
		return false
	}
	if isOpen(x+1, y) && isOpen(x, y+1) && isOpen(x+1, y+1) {
		return false
	}

	// --- No pillars: an orthogonal wall neighbor must keep at least one
	// wall connection once w opens ---
	for _, d := range core.CardinalDirs {
		n := w.Add(d)
		if !g.InBounds(n) || g.Walkable(n) {
			continue
		}

		connections := 0
		for _, d2 := range core.CardinalDirs {
			nn := n.Add(d2)
			if nn == w {
				continue // About to become a passage
			}
			if g.InBounds(nn) && !g.Walkable(nn) {
				connections++
			}
		}
		if connections == 0 {
			return false
		}
	}

	return true
}

func cutGates(g *Grid, want int, rng *rand.Rand) error {
	// Candidate boundary cells adjacent to an interior passage, corners excluded
	var candidates []core.Point
	for x := 1; x < g.Width-1; x++ {
		if g.Walkable(core.Point{X: x, Y: 1}) {
			candidates = append(candidates, core.Point{X: x, Y: 0})
		}
		if g.Walkable(core.Point{X: x, Y: g.Height - 2}) {
			candidates = append(candidates, core.Point{X: x, Y: g.Height - 1})
		}
	}
	for y := 1; y < g.Height-1; y++ {
		if g.Walkable(core.Point{X: 1, Y: y}) {
			candidates = append(candidates, core.Point{X: 0, Y: y})
		}
		if g.Walkable(core.Point{X: g.Width - 2, Y: y}) {
			candidates = append(candidates, core.Point{X: g.Width - 1, Y: y})
		}
	}
	if len(candidates) < want {
		return fmt.Errorf("generate: only %d gate sites for %d gates", len(candidates), want)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, p := range candidates[:want] {
		g.SetTile(p, TileGate)
		g.Gates = append(g.Gates, p)
	}
	return nil
}

func scatterTerrain(g *Grid, moss, brier float64, rng *rand.Rand) {
	if moss <= 0 && brier <= 0 {
		return
	}
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			p := core.Point{X: x, Y: y}
			if g.TileAt(p) != TileFloor {
				continue
			}
			roll := rng.Float64()
			switch {
			case roll < brier:
				g.SetTile(p, TileBrier)
			case roll < brier+moss:
				g.SetTile(p, TileMoss)
			}
		}
	}
}

// --- Helpers ---

func ensureOdd(n int) int {
	if n%2 == 0 {
		return n - 1 // Round down to stay within requested bounds
	}
	return n
}
