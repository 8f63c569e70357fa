package core

// Point is an integer tile coordinate on the maze grid
type Point struct {
	X, Y int
}

// Cardinal direction vectors in fixed order: N, E, S, W
// Neighbor iteration must use this order so path planning stays deterministic
var CardinalDirs = [4]Point{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
}

// Add returns p offset by d
func (p Point) Add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

// Manhattan returns the L1 distance between two points
func Manhattan(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Chebyshev returns the L∞ distance between two points
func Chebyshev(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dy > dx {
		return dy
	}
	return dx
}
