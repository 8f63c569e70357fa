package systems

import (
	"fmt"
	"time"

	"github.com/faewild/faemaze/components"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
)

// HeartSystem tracks the heart's vigor and decides the run outcome:
// defeat when the vigor drains, victory once every wave is cleared and no
// visitor remains in the maze.
type HeartSystem struct{}

func NewHeartSystem() *HeartSystem {
	return &HeartSystem{}
}

func (s *HeartSystem) Priority() int { return 50 }

func (s *HeartSystem) EventTypes() []events.EventType {
	return []events.EventType{events.EventVisitorReachedHeart}
}

func (s *HeartSystem) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	payload, ok := ev.Payload.(*events.VisitorPayload)
	if !ok || ctx.Over() {
		return
	}
	comp, ok := ctx.World.GetComponent(ctx.HeartEntity, heartType)
	if !ok {
		return
	}
	heart := comp.(*components.HeartComponent)

	heart.Vigor -= payload.Bite
	if heart.Vigor < 0 {
		heart.Vigor = 0
	}
	ctx.Stats.Struck++
	ctx.StatusMessage = fmt.Sprintf("the heart shudders (%d/%d)", heart.Vigor, heart.MaxVigor)

	if heart.Drained() {
		ctx.Phase = engine.PhaseDefeat
		ctx.StatusMessage = "the heart has gone dark"
		ctx.Emit(events.EventGameOver, &events.GameOverPayload{Victory: false})
	}
}

func (s *HeartSystem) Update(ctx *engine.GameContext, dt time.Duration) {
	if ctx.Over() {
		return
	}
	if ctx.WaveIndex < len(ctx.Cfg.Waves) {
		return
	}
	if len(ctx.World.GetEntitiesWith(visitorType)) > 0 {
		return
	}
	ctx.Phase = engine.PhaseVictory
	ctx.StatusMessage = "the fae retreat; the heart endures"
	ctx.Emit(events.EventGameOver, &events.GameOverPayload{Victory: true})
}
