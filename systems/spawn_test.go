package systems

import (
	"testing"
	"time"

	"github.com/faewild/faemaze/config"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
)

func singleWaveConfig(count int) []config.WaveConfig {
	return []config.WaveConfig{
		{Archetype: "wanderer", Count: count, SpawnEveryMs: 1000, BuildGapMs: 1000},
	}
}

func TestWaveStartsAfterBuildGap(t *testing.T) {
	ctx, mock := newTestContext(t)
	ctx.Cfg.Waves = singleWaveConfig(2)
	ctx.World.AddSystem(NewSpawnSystem())
	rec := recordEvents(ctx, events.EventWaveStarted, events.EventVisitorSpawned)

	tick(ctx, ctx.Cfg.TickInterval())
	if ctx.Phase != engine.PhaseBuild {
		t.Fatalf("phase = %v, want build during the gap", ctx.Phase)
	}
	if got := len(ctx.World.GetEntitiesWith(visitorType)); got != 0 {
		t.Fatalf("visitors = %d, want 0 during the gap", got)
	}

	mock.Advance(time.Second)
	tick(ctx, ctx.Cfg.TickInterval())
	if ctx.Phase != engine.PhaseWave {
		t.Fatalf("phase = %v, want wave after the gap", ctx.Phase)
	}

	tick(ctx, ctx.Cfg.TickInterval()) // First spawn lands the next tick
	if got := len(ctx.World.GetEntitiesWith(visitorType)); got != 1 {
		t.Fatalf("visitors = %d, want 1", got)
	}
	if rec.count(events.EventWaveStarted) != 1 {
		t.Errorf("WaveStarted events = %d, want 1", rec.count(events.EventWaveStarted))
	}

	mock.Advance(time.Second)
	tick(ctx, ctx.Cfg.TickInterval())
	if got := len(ctx.World.GetEntitiesWith(visitorType)); got != 2 {
		t.Fatalf("visitors = %d, want 2", got)
	}

	// Cadence exhausted; no third spawn
	mock.Advance(time.Second)
	tick(ctx, ctx.Cfg.TickInterval())
	tick(ctx, ctx.Cfg.TickInterval())
	if got := rec.count(events.EventVisitorSpawned); got != 2 {
		t.Errorf("VisitorSpawned events = %d, want 2", got)
	}
}

func TestWaveClearedWhenLastVisitorGone(t *testing.T) {
	ctx, mock := newTestContext(t)
	ctx.Cfg.Waves = singleWaveConfig(1)
	ctx.World.AddSystem(NewSpawnSystem())
	rec := recordEvents(ctx, events.EventWaveCleared)

	tick(ctx, ctx.Cfg.TickInterval())
	mock.Advance(time.Second)
	tick(ctx, ctx.Cfg.TickInterval())
	tick(ctx, ctx.Cfg.TickInterval())

	visitors := ctx.World.GetEntitiesWith(visitorType)
	if len(visitors) != 1 {
		t.Fatalf("visitors = %d, want 1", len(visitors))
	}
	ctx.World.DestroyEntity(visitors[0])

	tick(ctx, ctx.Cfg.TickInterval())
	if ctx.WaveIndex != 1 {
		t.Errorf("WaveIndex = %d, want 1", ctx.WaveIndex)
	}
	if ctx.Phase != engine.PhaseBuild {
		t.Errorf("phase = %v, want build", ctx.Phase)
	}
	if ctx.Stats.Waves != 1 {
		t.Errorf("Stats.Waves = %d, want 1", ctx.Stats.Waves)
	}

	tick(ctx, ctx.Cfg.TickInterval())
	if rec.count(events.EventWaveCleared) != 1 {
		t.Errorf("WaveCleared events = %d, want 1", rec.count(events.EventWaveCleared))
	}
}

func TestSpawnedVisitorEntersThroughAGate(t *testing.T) {
	ctx, mock := newTestContext(t)
	ctx.Cfg.Waves = singleWaveConfig(1)
	ctx.World.AddSystem(NewSpawnSystem())

	tick(ctx, ctx.Cfg.TickInterval())
	mock.Advance(time.Second)
	tick(ctx, ctx.Cfg.TickInterval())
	tick(ctx, ctx.Cfg.TickInterval())

	visitors := ctx.World.GetEntitiesWith(visitorType)
	if len(visitors) != 1 {
		t.Fatalf("visitors = %d, want 1", len(visitors))
	}
	pos, ok := ctx.World.Position(visitors[0])
	if !ok || pos != gateCell {
		t.Errorf("spawned at %v, want gate %v", pos, gateCell)
	}
}
