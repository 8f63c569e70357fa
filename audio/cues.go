package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
)

const sampleRate = beep.SampleRate(44100)

// Cues plays short generated tones for game moments. A failed speaker init
// is non-fatal; every cue becomes a no-op.
type Cues struct {
	ready bool
	mute  bool
}

// NewCues initializes the speaker unless muted
func NewCues(mute bool) *Cues {
	c := &Cues{mute: mute}
	if mute {
		return c
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err == nil {
		c.ready = true
	}
	return c
}

// EventTypes registers the cues as an event handler on the router
func (c *Cues) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventPowerActivated,
		events.EventVisitorBanished,
		events.EventVisitorReachedHeart,
		events.EventGameOver,
	}
}

func (c *Cues) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	switch ev.Type {
	case events.EventPowerActivated:
		c.play(660, 60*time.Millisecond)
	case events.EventVisitorBanished:
		c.play(880, 50*time.Millisecond)
	case events.EventVisitorReachedHeart:
		c.play(220, 120*time.Millisecond)
	case events.EventGameOver:
		if payload, ok := ev.Payload.(*events.GameOverPayload); ok && payload.Victory {
			c.play(990, 300*time.Millisecond)
		} else {
			c.play(110, 400*time.Millisecond)
		}
	}
}

func (c *Cues) play(freq float64, d time.Duration) {
	if !c.ready || c.mute {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// Close releases the speaker
func (c *Cues) Close() {
	if c.ready {
		speaker.Close()
	}
}
