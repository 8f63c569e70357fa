package systems

import (
	"testing"
	"time"

	"github.com/faewild/faemaze/components"
	"github.com/faewild/faemaze/config"
	"github.com/faewild/faemaze/core"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
	"github.com/faewild/faemaze/maze"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// Ring fixture: one gate at {1,0}, heart at {3,3}, a corridor looping the
// inner block. The short route from the gate costs 90, the long way 130.
const ringLayout = `#G#####
#.....#
#.###.#
#.#H..#
#.###.#
#.....#
#######
`

var gateCell = core.Point{X: 1, Y: 0}

func newTestContext(t *testing.T) (*engine.GameContext, *engine.MockTimeProvider) {
	t.Helper()
	grid, err := maze.ParseLayout([]byte(ringLayout))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	cfg := config.Default()
	mock := engine.NewMockTimeProvider(t0)
	ctx := engine.NewGameContext(cfg, grid, mock, 1)

	heart := ctx.World.CreateEntity()
	ctx.World.AddComponent(heart, &components.HeartComponent{
		Vigor:    cfg.Heart.Vigor,
		MaxVigor: cfg.Heart.Vigor,
	})
	ctx.World.SetPosition(heart, grid.Heart)
	ctx.HeartEntity = heart
	return ctx, mock
}

// tick mirrors one frame of the game loop: dispatch, then systems
func tick(ctx *engine.GameContext, dt time.Duration) {
	ctx.IncrementFrameNumber()
	ctx.Router.DispatchAll(ctx)
	ctx.World.Update(ctx, dt)
}

func addVisitor(ctx *engine.GameContext, at core.Point, stepMs int) (engine.Entity, *components.VisitorComponent) {
	v := &components.VisitorComponent{
		Archetype:    "wanderer",
		Bite:         1,
		StepInterval: time.Duration(stepMs) * time.Millisecond,
		NextStep:     ctx.Now(),
		State:        components.StateWalking,
		Gate:         gateCell,
	}
	e := ctx.World.CreateEntity()
	ctx.World.AddComponent(e, v)
	ctx.World.SetPosition(e, at)
	return e, v
}

// eventRecorder registers for the given types and remembers what it saw
type eventRecorder struct {
	types []events.EventType
	seen  []events.GameEvent
}

func (r *eventRecorder) EventTypes() []events.EventType { return r.types }

func (r *eventRecorder) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	r.seen = append(r.seen, ev)
}

func (r *eventRecorder) count(t events.EventType) int {
	n := 0
	for _, ev := range r.seen {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func recordEvents(ctx *engine.GameContext, types ...events.EventType) *eventRecorder {
	r := &eventRecorder{types: types}
	ctx.Router.Register(r)
	return r
}
