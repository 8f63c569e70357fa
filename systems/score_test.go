package systems

import (
	"testing"
	"time"

	"github.com/faewild/faemaze/events"
)

func TestEssenceRegenCarriesFractions(t *testing.T) {
	ctx, _ := newTestContext(t)
	score := NewScoreSystem()
	ctx.Router.Register(score)
	ctx.World.AddSystem(score)

	// 1.5 per second: +1 after the first second, +2 after the next
	tick(ctx, time.Second)
	if ctx.Essence != 31 {
		t.Errorf("essence = %d, want 31", ctx.Essence)
	}
	tick(ctx, time.Second)
	if ctx.Essence != 33 {
		t.Errorf("essence = %d, want 33", ctx.Essence)
	}
}

func TestRegenClampsAtMax(t *testing.T) {
	ctx, _ := newTestContext(t)
	score := NewScoreSystem()
	ctx.Router.Register(score)
	ctx.World.AddSystem(score)

	ctx.Essence = ctx.Cfg.Essence.Max
	tick(ctx, 10*time.Second)
	if ctx.Essence != ctx.Cfg.Essence.Max {
		t.Errorf("essence = %d, want clamped to %d", ctx.Essence, ctx.Cfg.Essence.Max)
	}
}

func TestBanishBountyPaysOut(t *testing.T) {
	ctx, _ := newTestContext(t)
	score := NewScoreSystem()
	ctx.Router.Register(score)
	ctx.World.AddSystem(score)

	ctx.Emit(events.EventVisitorBanished, &events.VisitorPayload{Archetype: "wanderer"})
	tick(ctx, ctx.Cfg.TickInterval())

	if got, want := ctx.Essence, 30+ctx.Cfg.Essence.BanishBounty; got != want {
		t.Errorf("essence = %d, want %d", got, want)
	}
	if ctx.Stats.Banished != 1 {
		t.Errorf("Stats.Banished = %d, want 1", ctx.Stats.Banished)
	}
}
