package systems

import (
	"fmt"
	"time"

	"github.com/faewild/faemaze/components"
	"github.com/faewild/faemaze/config"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
)

// SpawnSystem drives the wave schedule: build gaps, spawn cadence, and
// wave-cleared detection. One visitor spawns per eligible tick, entering
// through a random gate.
type SpawnSystem struct {
	started     bool
	nextWaveAt  time.Time
	spawning    bool
	spawned     int
	nextSpawnAt time.Time
}

func NewSpawnSystem() *SpawnSystem {
	return &SpawnSystem{}
}

func (s *SpawnSystem) Priority() int { return 10 }

func (s *SpawnSystem) Update(ctx *engine.GameContext, dt time.Duration) {
	if ctx.Over() {
		return
	}
	now := ctx.Now()

	if !s.started {
		s.started = true
		s.scheduleWave(ctx, now)
	}

	if ctx.WaveIndex >= len(ctx.Cfg.Waves) {
		return // HeartSystem declares victory once the field empties
	}
	wave := ctx.Cfg.Waves[ctx.WaveIndex]

	switch ctx.Phase {
	case engine.PhaseBuild:
		if now.Before(s.nextWaveAt) {
			return
		}
		ctx.Phase = engine.PhaseWave
		s.spawning = true
		s.spawned = 0
		s.nextSpawnAt = now
		ctx.StatusMessage = fmt.Sprintf("wave %d: %s x%d", ctx.WaveIndex+1, wave.Archetype, wave.Count)
		ctx.Emit(events.EventWaveStarted, &events.WavePayload{Index: ctx.WaveIndex})

	case engine.PhaseWave:
		if s.spawning && !now.Before(s.nextSpawnAt) {
			s.spawnVisitor(ctx, wave, now)
			s.spawned++
			s.nextSpawnAt = now.Add(time.Duration(wave.SpawnEveryMs) * time.Millisecond)
			if s.spawned >= wave.Count {
				s.spawning = false
			}
		}
		if !s.spawning && s.waveEmpty(ctx) {
			ctx.Stats.Waves++
			ctx.Emit(events.EventWaveCleared, &events.WavePayload{Index: ctx.WaveIndex})
			ctx.WaveIndex++
			ctx.Phase = engine.PhaseBuild
			s.scheduleWave(ctx, now)
		}
	}
}

func (s *SpawnSystem) scheduleWave(ctx *engine.GameContext, now time.Time) {
	if ctx.WaveIndex >= len(ctx.Cfg.Waves) {
		return
	}
	gap := time.Duration(ctx.Cfg.Waves[ctx.WaveIndex].BuildGapMs) * time.Millisecond
	s.nextWaveAt = now.Add(gap)
}

func (s *SpawnSystem) spawnVisitor(ctx *engine.GameContext, wave config.WaveConfig, now time.Time) {
	arch := ctx.Cfg.Archetype(wave.Archetype)
	gate := ctx.Grid.Gates[ctx.Rng.Intn(len(ctx.Grid.Gates))]
	interval := time.Duration(arch.StepMs) * time.Millisecond

	e := ctx.World.CreateEntity()
	ctx.World.AddComponent(e, &components.VisitorComponent{
		Archetype:    arch.Name,
		Bite:         arch.Bite,
		StepInterval: interval,
		NextStep:     now.Add(interval),
		State:        components.StateWalking,
		Gate:         gate,
		Wave:         ctx.WaveIndex,
	})
	ctx.World.SetPosition(e, gate)
	ctx.Emit(events.EventVisitorSpawned, &events.VisitorPayload{
		Entity:    uint64(e),
		Archetype: arch.Name,
		Cell:      gate,
		Bite:      arch.Bite,
	})
}

// waveEmpty reports whether the running wave has no visitors left in the maze
func (s *SpawnSystem) waveEmpty(ctx *engine.GameContext) bool {
	for _, e := range ctx.World.GetEntitiesWith(visitorType) {
		comp, _ := ctx.World.GetComponent(e, visitorType)
		if comp.(*components.VisitorComponent).Wave == ctx.WaveIndex {
			return false
		}
	}
	return true
}
