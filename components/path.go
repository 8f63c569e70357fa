package components

import (
	"github.com/faewild/faemaze/core"
)

// PathComponent holds a visitor's planned route
type PathComponent struct {
	Cells []core.Point // Plan from the cell it was made at to Goal
	Next  int          // Index of the next cell to step onto
	Goal  core.Point
	Epoch uint64 // Overlay epoch the plan was computed under
}

// Done reports whether the plan is fully consumed
func (p *PathComponent) Done() bool {
	return p.Next >= len(p.Cells)
}

// NextCell returns the upcoming step, false when the plan is consumed
func (p *PathComponent) NextCell() (core.Point, bool) {
	if p.Done() {
		return core.Point{}, false
	}
	return p.Cells[p.Next], true
}
