package systems

import (
	"time"

	"github.com/faewild/faemaze/components"
	"github.com/faewild/faemaze/core"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
	"github.com/faewild/faemaze/navigation"
)

// NavigationSystem keeps visitor plans consistent with the maze: it sweeps
// expired overlay entries, refreshes the distance field cache, and replans
// any path whose overlay epoch, goal, or next step went stale.
type NavigationSystem struct {
	forceRepath bool
}

func NewNavigationSystem() *NavigationSystem {
	return &NavigationSystem{}
}

func (s *NavigationSystem) Priority() int { return 30 }

func (s *NavigationSystem) EventTypes() []events.EventType {
	return []events.EventType{events.EventPathsDirty}
}

// Grid mutations do not move the overlay epoch, so prop changes announce
// themselves through PathsDirty instead
func (s *NavigationSystem) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	s.forceRepath = true
	ctx.Field.MarkDirty()
}

func (s *NavigationSystem) Update(ctx *engine.GameContext, dt time.Duration) {
	now := ctx.Now()
	ctx.Overlay.Sweep(now)
	ctx.Field.Update(ctx.Grid, ctx.Overlay, ctx.Grid.Heart, now)

	epoch := ctx.Overlay.Epoch()
	for _, e := range ctx.World.GetEntitiesWith(visitorType) {
		comp, _ := ctx.World.GetComponent(e, visitorType)
		v := comp.(*components.VisitorComponent)
		if v.State == components.StateDazed || v.State == components.StateFleeing {
			continue // Dazed stand still; fleeing climb the field instead
		}
		pos, ok := ctx.World.Position(e)
		if !ok {
			continue
		}
		goal := goalFor(ctx, v)

		var path *components.PathComponent
		if comp, ok := ctx.World.GetComponent(e, pathType); ok {
			path = comp.(*components.PathComponent)
		}
		if !s.forceRepath && planFresh(ctx, path, pos, goal, epoch) {
			continue
		}

		res := navigation.FindPath(ctx.Grid, ctx.Overlay, pos, goal, now)
		if !res.Found {
			// A charm target can be sealed off; fall back to the heart
			if v.State == components.StateCharmed {
				v.State = components.StateWalking
				v.StateUntil = time.Time{}
				v.CharmAt = core.Point{}
			}
			ctx.World.RemoveComponent(e, pathType)
			continue
		}
		ctx.World.AddComponent(e, &components.PathComponent{
			Cells: res.Cells,
			Next:  1, // Cells[0] is the cell the plan was made at
			Goal:  goal,
			Epoch: epoch,
		})
	}
	s.forceRepath = false
}

func goalFor(ctx *engine.GameContext, v *components.VisitorComponent) core.Point {
	switch v.State {
	case components.StateCharmed:
		return v.CharmAt
	case components.StateLeaving:
		return v.Gate
	default:
		return ctx.Grid.Heart
	}
}

// planFresh reports whether an existing plan can keep being followed
func planFresh(ctx *engine.GameContext, path *components.PathComponent, pos, goal core.Point, epoch uint64) bool {
	if path == nil || path.Goal != goal || path.Epoch != epoch {
		return false
	}
	next, ok := path.NextCell()
	if !ok {
		return pos == goal // Consumed plan is fine while lingering at the goal
	}
	return ctx.Grid.Walkable(next)
}
