package maze

import (
	"github.com/faewild/faemaze/core"
)

// Tile identifies what occupies a single grid cell
type Tile byte

const (
	TileWall  Tile = iota // Impassable
	TileFloor             // Plain walkable ground
	TileMoss              // Soft ground, slightly slower
	TileBrier             // Thorny ground, markedly slower
	TileGate              // Boundary entrance visitors arrive through
	TileHeart             // The defended cell (exactly one per grid)
)

// Base step costs per tile kind
// Cardinal movement only; cost is charged for entering the tile
const (
	CostFloor = 10
	CostMoss  = 16
	CostBrier = 24
)

// Grid is the walkable-tile field pathfinding queries traverse
// Mutable only through SetTile; the heart cell never moves after load
type Grid struct {
	Width, Height int
	Heart         core.Point
	Gates         []core.Point

	tiles []Tile // Row-major, len = Width*Height
}

// NewGrid creates a grid filled with walls
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
	}
}

// InBounds reports whether p lies inside the grid
func (g *Grid) InBounds(p core.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// Index returns the flat row-major index for p (no bounds check)
func (g *Grid) Index(p core.Point) int {
	return p.Y*g.Width + p.X
}

// TileAt returns the tile at p, TileWall for out-of-bounds points
func (g *Grid) TileAt(p core.Point) Tile {
	if !g.InBounds(p) {
		return TileWall
	}
	return g.tiles[g.Index(p)]
}

// SetTile overwrites the tile at p, ignoring out-of-bounds points
func (g *Grid) SetTile(p core.Point, t Tile) {
	if !g.InBounds(p) {
		return
	}
	g.tiles[g.Index(p)] = t
}

// Walkable reports whether visitors can occupy p
func (g *Grid) Walkable(p core.Point) bool {
	return g.TileAt(p) != TileWall
}

// BaseCost returns the unmodified cost of entering p
// Walls and out-of-bounds points report 0; callers must gate on Walkable
func (g *Grid) BaseCost(p core.Point) int {
	switch g.TileAt(p) {
	case TileFloor, TileGate, TileHeart:
		return CostFloor
	case TileMoss:
		return CostMoss
	case TileBrier:
		return CostBrier
	default:
		return 0
	}
}

// OnBoundary reports whether p sits on the outer edge of the grid
func (g *Grid) OnBoundary(p core.Point) bool {
	return p.X == 0 || p.Y == 0 || p.X == g.Width-1 || p.Y == g.Height-1
}

// Reachable runs a BFS from the heart over walkable tiles and reports
// whether every given point is connected to it
func (g *Grid) Reachable(points ...core.Point) bool {
	if !g.Walkable(g.Heart) {
		return false
	}

	visited := make([]bool, g.Width*g.Height)
	queue := []core.Point{g.Heart}
	visited[g.Index(g.Heart)] = true

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, d := range core.CardinalDirs {
			next := curr.Add(d)
			if !g.InBounds(next) || !g.Walkable(next) {
				continue
			}
			idx := g.Index(next)
			if visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue, next)
		}
	}

	for _, p := range points {
		if !g.InBounds(p) || !visited[g.Index(p)] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, used to trial-run mutations before committing
func (g *Grid) Clone() *Grid {
	dup := &Grid{
		Width:  g.Width,
		Height: g.Height,
		Heart:  g.Heart,
		Gates:  append([]core.Point(nil), g.Gates...),
		tiles:  append([]Tile(nil), g.tiles...),
	}
	return dup
}
