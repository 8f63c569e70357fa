package components

import (
	"time"

	"github.com/faewild/faemaze/core"
)

// VisitorState drives movement behavior
type VisitorState int

const (
	StateWalking VisitorState = iota // Pathing toward the heart
	StateDazed                       // Standing still until the deadline
	StateCharmed                     // Pathing toward the charm target
	StateFleeing                     // Climbing the distance field away from the heart
	StateLeaving                     // Pathing back out through the entry gate
)

// String returns the HUD label for a state
func (s VisitorState) String() string {
	switch s {
	case StateDazed:
		return "dazed"
	case StateCharmed:
		return "charmed"
	case StateFleeing:
		return "fleeing"
	case StateLeaving:
		return "leaving"
	default:
		return "walking"
	}
}

// StateFromName maps the config's state names onto VisitorState
func StateFromName(name string) (VisitorState, bool) {
	switch name {
	case "dazed":
		return StateDazed, true
	case "charmed":
		return StateCharmed, true
	case "fleeing":
		return StateFleeing, true
	default:
		return StateWalking, false
	}
}

// VisitorComponent is the pathfinding agent moving toward the heart
type VisitorComponent struct {
	Archetype    string
	Bite         int           // Heart vigor drained on arrival
	StepInterval time.Duration // Per-tile move time on plain floor
	NextStep     time.Time     // When the next tile move is due

	State      VisitorState
	StateUntil time.Time  // Deadline for timed states; zero for Walking/Leaving
	CharmAt    core.Point // Target while charmed

	Gate core.Point // Entry gate, reused as the exit when leaving
	Wave int        // Wave index this visitor belongs to
}

// TimedStateExpired reports whether a dazed/charmed/fleeing deadline passed
func (v *VisitorComponent) TimedStateExpired(now time.Time) bool {
	switch v.State {
	case StateDazed, StateCharmed, StateFleeing:
		return !v.StateUntil.After(now)
	default:
		return false
	}
}
