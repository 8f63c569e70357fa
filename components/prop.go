package components

import (
	"github.com/faewild/faemaze/maze"
)

// PropComponent is a player-placed obstacle or snare
type PropComponent struct {
	Kind     string // Prop name from the config roster
	Blocking bool
	Source   string    // Overlay source tag for non-blocking props
	PrevTile maze.Tile // Tile restored when the prop is removed
}
