package systems

import (
	"fmt"
	"time"

	"github.com/faewild/faemaze/components"
	"github.com/faewild/faemaze/config"
	"github.com/faewild/faemaze/core"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
)

// PowerSystem resolves power invocations into overlay writes and visitor
// state changes. Overlay entries carry a per-invocation source tag and an
// expiry, so the sweep retires them without touching other effects.
type PowerSystem struct {
	cooldowns map[string]time.Time
	active    []activeEffect
	seq       int // Per-invocation source tag counter
}

type activeEffect struct {
	power  string
	source string
	until  time.Time
}

func NewPowerSystem() *PowerSystem {
	return &PowerSystem{cooldowns: make(map[string]time.Time)}
}

func (s *PowerSystem) Priority() int { return 20 }

func (s *PowerSystem) EventTypes() []events.EventType {
	return []events.EventType{events.EventPowerInvoke}
}

func (s *PowerSystem) HandleEvent(ctx *engine.GameContext, ev events.GameEvent) {
	payload, ok := ev.Payload.(*events.PowerInvokePayload)
	if !ok || ctx.Over() {
		return
	}
	p := ctx.Cfg.Power(payload.Power)
	if p == nil {
		return
	}
	now := ctx.Now()
	if until, ok := s.cooldowns[p.Name]; ok && now.Before(until) {
		ctx.StatusMessage = p.Name + " is still recharging"
		return
	}
	if !ctx.SpendEssence(p.Essence) {
		ctx.StatusMessage = "not enough essence"
		return
	}

	s.seq++
	source := fmt.Sprintf("power:%s#%d", p.Name, s.seq)
	until := now.Add(time.Duration(p.DurationMs) * time.Millisecond)
	area := core.AreaAround(payload.Center, p.Radius).Clamp(ctx.Grid.Width, ctx.Grid.Height)

	for _, pt := range area.Points() {
		if !ctx.Grid.Walkable(pt) {
			continue
		}
		if p.CostDelta != 0 {
			ctx.Overlay.Add(pt, p.CostDelta, until, source)
		}
		if p.State != "" {
			s.applyState(ctx, pt, p, payload.Center, until)
		}
	}

	s.cooldowns[p.Name] = now.Add(time.Duration(p.CooldownMs) * time.Millisecond)
	s.active = append(s.active, activeEffect{power: p.Name, source: source, until: until})
	ctx.StatusMessage = p.Name + " invoked"
	ctx.Emit(events.EventPowerActivated, &events.PowerInvokePayload{
		Power:  p.Name,
		Center: payload.Center,
	})
}

func (s *PowerSystem) applyState(ctx *engine.GameContext, pt core.Point, p *config.PowerConfig, center core.Point, until time.Time) {
	state, ok := components.StateFromName(p.State)
	if !ok {
		return
	}
	for _, e := range ctx.World.EntitiesAt(pt) {
		comp, ok := ctx.World.GetComponent(e, visitorType)
		if !ok {
			continue
		}
		v := comp.(*components.VisitorComponent)
		if v.State == components.StateLeaving {
			continue // Already on the way out
		}
		v.State = state
		v.StateUntil = until
		if state == components.StateCharmed {
			v.CharmAt = center
		}
	}
}

// Update retires effects whose duration lapsed. The overlay entries expire
// on their own through the sweep; this only reports the timeout.
func (s *PowerSystem) Update(ctx *engine.GameContext, dt time.Duration) {
	now := ctx.Now()
	kept := s.active[:0]
	for _, eff := range s.active {
		if eff.until.After(now) {
			kept = append(kept, eff)
			continue
		}
		ctx.Emit(events.EventPowerExpired, &events.PowerExpiredPayload{
			Power:  eff.power,
			Source: eff.source,
		})
	}
	s.active = kept
}

// CooldownRemaining returns how long until a power recharges, zero if ready
func (s *PowerSystem) CooldownRemaining(name string, now time.Time) time.Duration {
	until, ok := s.cooldowns[name]
	if !ok || !until.After(now) {
		return 0
	}
	return until.Sub(now)
}
