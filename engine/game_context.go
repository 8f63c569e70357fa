package engine

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/faewild/faemaze/config"
	"github.com/faewild/faemaze/core"
	"github.com/faewild/faemaze/events"
	"github.com/faewild/faemaze/maze"
	"github.com/faewild/faemaze/navigation"
)

// Phase represents the current game phase
type Phase int

const (
	PhaseBuild   Phase = iota // Quiet gap before the next wave
	PhaseWave                 // Visitors inbound
	PhaseVictory              // All waves cleared
	PhaseDefeat               // Heart drained
)

// RunStats accumulates one run's outcome for the ledger
type RunStats struct {
	RunID     string // UUID assigned at context creation
	Seed      int64
	StartedAt time.Time
	Banished  int
	Struck    int // Visitors that reached the heart
	Waves     int // Waves fully cleared
}

// GameContext holds all game state shared across systems
type GameContext struct {
	World   *World
	Grid    *maze.Grid
	Overlay *navigation.CostOverlay
	Field   *navigation.FieldCache

	Queue  *events.EventQueue
	Router *events.Router[*GameContext]

	TimeProvider TimeProvider
	Rng          *rand.Rand
	Cfg          *config.Config

	HeartEntity Entity

	// Player state
	Cursor  core.Point
	Essence int

	Phase         Phase
	WaveIndex     int // Index of the running or upcoming wave
	StatusMessage string
	OverlayView   bool // HUD toggle: shade tiles by overlay delta

	Stats RunStats

	frameNumber atomic.Int64
}

// NewGameContext wires a fresh world around the given grid
func NewGameContext(cfg *config.Config, grid *maze.Grid, tp TimeProvider, seed int64) *GameContext {
	queue := events.NewEventQueue()

	ctx := &GameContext{
		World:        NewWorld(),
		Grid:         grid,
		Overlay:      navigation.NewCostOverlay(),
		Field:        navigation.NewFieldCache(grid.Width, grid.Height, cfg.Engine.FieldMinTicks),
		Queue:        queue,
		TimeProvider: tp,
		Rng:          rand.New(rand.NewSource(seed)),
		Cfg:          cfg,
		Cursor:       grid.Heart,
		Essence:      cfg.Essence.Start,
		Phase:        PhaseBuild,
		Stats: RunStats{
			RunID:     uuid.NewString(),
			Seed:      seed,
			StartedAt: tp.Now(),
		},
	}
	ctx.Router = events.NewRouter[*GameContext](queue)
	return ctx
}

// Emit pushes an event stamped with the current frame and time
func (g *GameContext) Emit(t events.EventType, payload any) {
	g.Queue.Push(events.GameEvent{
		Type:      t,
		Payload:   payload,
		Frame:     g.FrameNumber(),
		Timestamp: g.TimeProvider.Now(),
	})
}

// Now is shorthand for the provider clock
func (g *GameContext) Now() time.Time {
	return g.TimeProvider.Now()
}

// FrameNumber returns the current frame number
func (g *GameContext) FrameNumber() int64 {
	return g.frameNumber.Load()
}

// IncrementFrameNumber advances and returns the frame number
func (g *GameContext) IncrementFrameNumber() int64 {
	return g.frameNumber.Add(1)
}

// Over reports whether the run has ended either way
func (g *GameContext) Over() bool {
	return g.Phase == PhaseVictory || g.Phase == PhaseDefeat
}

// MoveCursor shifts the player cursor, clamped to the grid
func (g *GameContext) MoveCursor(dx, dy int) {
	p := core.Point{X: g.Cursor.X + dx, Y: g.Cursor.Y + dy}
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.X >= g.Grid.Width {
		p.X = g.Grid.Width - 1
	}
	if p.Y >= g.Grid.Height {
		p.Y = g.Grid.Height - 1
	}
	g.Cursor = p
}

// SpendEssence withdraws cost if affordable and reports success
func (g *GameContext) SpendEssence(cost int) bool {
	if cost > g.Essence {
		return false
	}
	g.Essence -= cost
	return true
}

// GainEssence deposits amount, clamped to the configured maximum
func (g *GameContext) GainEssence(amount int) {
	g.Essence += amount
	if g.Essence > g.Cfg.Essence.Max {
		g.Essence = g.Cfg.Essence.Max
	}
}
