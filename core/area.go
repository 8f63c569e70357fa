package core

// Area represents a rectangular target region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions (minimum 1x1)
}

// AreaAround builds the square region of the given radius centered on p
// Radius 0 yields a 1x1 area covering only p
func AreaAround(p Point, radius int) Area {
	if radius < 0 {
		radius = 0
	}
	return Area{
		X:      p.X - radius,
		Y:      p.Y - radius,
		Width:  2*radius + 1,
		Height: 2*radius + 1,
	}
}

// Contains reports whether p falls inside the area
func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X < a.X+a.Width &&
		p.Y >= a.Y && p.Y < a.Y+a.Height
}

// Clamp shrinks the area to fit inside a width x height grid
// The result may be empty (Width or Height <= 0)
func (a Area) Clamp(width, height int) Area {
	x0, y0 := a.X, a.Y
	x1, y1 := a.X+a.Width, a.Y+a.Height
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	return Area{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Points returns every grid point inside the area in row-major order
func (a Area) Points() []Point {
	if a.Width <= 0 || a.Height <= 0 {
		return nil
	}
	pts := make([]Point, 0, a.Width*a.Height)
	for y := a.Y; y < a.Y+a.Height; y++ {
		for x := a.X; x < a.X+a.Width; x++ {
			pts = append(pts, Point{x, y})
		}
	}
	return pts
}
