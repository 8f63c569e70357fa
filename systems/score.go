package systems

import (
	"time"

	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
)

// ScoreSystem trickles essence back over time and pays the bounty for
// visitors driven out through a gate.
type ScoreSystem struct {
	regenAcc float64 // Fractional essence carried between ticks
}

func NewScoreSystem() *ScoreSystem {
	return &ScoreSystem{}
}

func (s *ScoreSystem) Priority() int { return 60 }

func (s *ScoreSystem) EventTypes() []events.EventType {
	return []events.EventType{events.EventVisitorBanished}
}

func (s *ScoreSystem) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	if _, ok := ev.Payload.(*events.VisitorPayload); !ok {
		return
	}
	ctx.Stats.Banished++
	ctx.GainEssence(ctx.Cfg.Essence.BanishBounty)
	ctx.StatusMessage = "a visitor flees the maze"
}

func (s *ScoreSystem) Update(ctx *engine.GameContext, dt time.Duration) {
	if ctx.Over() {
		return
	}
	s.regenAcc += dt.Seconds() * ctx.Cfg.Essence.RegenPerSec
	if whole := int(s.regenAcc); whole > 0 {
		s.regenAcc -= float64(whole)
		ctx.GainEssence(whole)
	}
}
