package events

import (
	"github.com/faewild/faemaze/core"
)

// PowerInvokePayload carries a power activation request
type PowerInvokePayload struct {
	Power  string // Power name from the config roster
	Center core.Point
}

// PowerExpiredPayload reports a power effect that timed out
type PowerExpiredPayload struct {
	Power  string
	Source string // Overlay source tag that was swept
}

// PropPlacePayload carries a prop placement request
type PropPlacePayload struct {
	Kind string // Prop kind from the config roster
	Cell core.Point
}

// PropClearPayload carries a prop removal request
type PropClearPayload struct {
	Cell core.Point
}

// VisitorPayload identifies a visitor lifecycle event.
// Bite travels in the payload because the entity may already be
// destroyed by the time the event is dispatched.
type VisitorPayload struct {
	Entity    uint64
	Archetype string
	Cell      core.Point
	Bite      int
}

// WavePayload identifies a wave boundary
type WavePayload struct {
	Index int // Zero-based wave number
}

// GameOverPayload reports the run outcome
type GameOverPayload struct {
	Victory bool
}
