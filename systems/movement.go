package systems

import (
	"time"

	"github.com/faewild/faemaze/components"
	"github.com/faewild/faemaze/core"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
)

// MovementSystem advances visitors one tile at a time on their step cadence.
// Walking, charmed and leaving visitors follow their planned path; fleeing
// visitors climb the distance field; dazed visitors stand still. Arrival at
// the heart and exit through a gate both despawn the visitor, via different
// events.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Priority() int { return 40 }

func (s *MovementSystem) Update(ctx *engine.GameContext, dt time.Duration) {
	if ctx.Over() {
		return
	}
	now := ctx.Now()

	for _, e := range ctx.World.GetEntitiesWith(visitorType) {
		comp, _ := ctx.World.GetComponent(e, visitorType)
		v := comp.(*components.VisitorComponent)

		if v.TimedStateExpired(now) {
			s.expireState(v)
		}
		if now.Before(v.NextStep) {
			continue
		}
		pos, ok := ctx.World.Position(e)
		if !ok {
			continue
		}

		switch v.State {
		case components.StateDazed:
			v.NextStep = now.Add(v.StepInterval)
		case components.StateFleeing:
			if next, ok := ctx.Field.Field.FleeStep(ctx.Grid, pos); ok {
				ctx.World.SetPosition(e, next)
				pos = next
			}
			v.NextStep = now.Add(v.StepInterval)
			// Reaching a gate while panicked counts as driven out
			if s.atGate(ctx, pos) {
				s.banish(ctx, e, v, pos)
			}
		default:
			s.followPath(ctx, e, v, now)
		}
	}
}

// expireState reverts a lapsed timed state. Fleeing visitors do not calm
// down; they bolt for their entry gate instead.
func (s *MovementSystem) expireState(v *components.VisitorComponent) {
	if v.State == components.StateFleeing {
		v.State = components.StateLeaving
	} else {
		v.State = components.StateWalking
	}
	v.StateUntil = time.Time{}
	v.CharmAt = core.Point{}
}

func (s *MovementSystem) followPath(ctx *engine.GameContext, e engine.Entity, v *components.VisitorComponent, now time.Time) {
	comp, ok := ctx.World.GetComponent(e, pathType)
	if !ok {
		return // No plan yet; NavigationSystem runs before the next step
	}
	path := comp.(*components.PathComponent)

	next, ok := path.NextCell()
	if !ok {
		if pos, ok := ctx.World.Position(e); ok {
			s.arrive(ctx, e, v, pos)
		}
		return
	}
	if !ctx.Grid.Walkable(next) {
		return // Stale plan; replanned next tick
	}

	ctx.World.SetPosition(e, next)
	path.Next++
	v.NextStep = now.Add(v.StepInterval)
	if path.Done() {
		s.arrive(ctx, e, v, next)
	}
}

// arrive resolves a visitor standing at the end of its plan
func (s *MovementSystem) arrive(ctx *engine.GameContext, e engine.Entity, v *components.VisitorComponent, at core.Point) {
	switch {
	case v.State == components.StateLeaving && at == v.Gate:
		s.banish(ctx, e, v, at)
	case at == ctx.Grid.Heart && v.State != components.StateLeaving:
		ctx.Emit(events.EventVisitorReachedHeart, &events.VisitorPayload{
			Entity:    uint64(e),
			Archetype: v.Archetype,
			Cell:      at,
			Bite:      v.Bite,
		})
		ctx.World.DestroyEntity(e)
	}
	// Charmed visitors linger at the lure until the charm lapses
}

func (s *MovementSystem) banish(ctx *engine.GameContext, e engine.Entity, v *components.VisitorComponent, at core.Point) {
	ctx.Emit(events.EventVisitorBanished, &events.VisitorPayload{
		Entity:    uint64(e),
		Archetype: v.Archetype,
		Cell:      at,
		Bite:      v.Bite,
	})
	ctx.World.DestroyEntity(e)
}

func (s *MovementSystem) atGate(ctx *engine.GameContext, pos core.Point) bool {
	for _, gate := range ctx.Grid.Gates {
		if pos == gate {
			return true
		}
	}
	return false
}
