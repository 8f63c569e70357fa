package systems

import (
	"fmt"
	"time"

	"github.com/faewild/faemaze/components"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
	"github.com/faewild/faemaze/maze"
)

// PropSystem places and removes player props. Blocking props rewrite the
// grid itself and are refused when they would cut every gate off from the
// heart; snares live as permanent overlay entries keyed by source tag.
type PropSystem struct {
	seq int // Per-placement source tag counter
}

func NewPropSystem() *PropSystem {
	return &PropSystem{}
}

func (s *PropSystem) Priority() int { return 25 }

func (s *PropSystem) EventTypes() []events.EventType {
	return []events.EventType{events.EventPropPlace, events.EventPropClear}
}

func (s *PropSystem) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	if ctx.Over() {
		return
	}
	switch ev.Type {
	case events.EventPropPlace:
		if payload, ok := ev.Payload.(*events.PropPlacePayload); ok {
			s.place(ctx, payload)
		}
	case events.EventPropClear:
		if payload, ok := ev.Payload.(*events.PropClearPayload); ok {
			s.clear(ctx, payload)
		}
	}
}

// Props are event-driven; nothing runs per tick
func (s *PropSystem) Update(ctx *engine.GameContext, dt time.Duration) {}

func (s *PropSystem) place(ctx *engine.GameContext, payload *events.PropPlacePayload) {
	def := ctx.Cfg.Prop(payload.Kind)
	if def == nil {
		return
	}
	cell := payload.Cell
	if !ctx.Grid.Walkable(cell) || cell == ctx.Grid.Heart {
		ctx.StatusMessage = "cannot place there"
		return
	}
	for _, gate := range ctx.Grid.Gates {
		if cell == gate {
			ctx.StatusMessage = "cannot block a gate"
			return
		}
	}
	for _, e := range ctx.World.EntitiesAt(cell) {
		if ctx.World.HasComponent(e, propType) {
			ctx.StatusMessage = "tile already has a prop"
			return
		}
		if def.Blocking && ctx.World.HasComponent(e, visitorType) {
			ctx.StatusMessage = "a visitor is standing there"
			return
		}
	}
	if def.Blocking {
		trial := ctx.Grid.Clone()
		trial.SetTile(cell, maze.TileWall)
		if !trial.Reachable(trial.Gates...) {
			ctx.StatusMessage = "that would seal the maze"
			return
		}
	}
	if !ctx.SpendEssence(def.Essence) {
		ctx.StatusMessage = "not enough essence"
		return
	}

	prop := &components.PropComponent{
		Kind:     def.Name,
		Blocking: def.Blocking,
		PrevTile: ctx.Grid.TileAt(cell),
	}
	if def.Blocking {
		ctx.Grid.SetTile(cell, maze.TileWall)
		ctx.Field.MarkDirty()
		ctx.Emit(events.EventPathsDirty, nil)
	} else {
		s.seq++
		prop.Source = fmt.Sprintf("prop:%s#%d", def.Name, s.seq)
		// Zero expiry: the entry stays until the prop is cleared
		ctx.Overlay.Add(cell, def.CostDelta, time.Time{}, prop.Source)
	}

	e := ctx.World.CreateEntity()
	ctx.World.AddComponent(e, prop)
	ctx.World.SetPosition(e, cell)
	ctx.StatusMessage = def.Name + " placed"
}

func (s *PropSystem) clear(ctx *engine.GameContext, payload *events.PropClearPayload) {
	for _, e := range ctx.World.EntitiesAt(payload.Cell) {
		comp, ok := ctx.World.GetComponent(e, propType)
		if !ok {
			continue
		}
		prop := comp.(*components.PropComponent)
		if prop.Blocking {
			ctx.Grid.SetTile(payload.Cell, prop.PrevTile)
			ctx.Field.MarkDirty()
			ctx.Emit(events.EventPathsDirty, nil)
		} else {
			ctx.Overlay.RemoveSource(prop.Source)
		}
		ctx.World.DestroyEntity(e)
		ctx.StatusMessage = prop.Kind + " cleared"
		return
	}
	ctx.StatusMessage = "nothing to clear"
}
