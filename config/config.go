package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries every gameplay tunable. Defaults ship in Default();
// a YAML file loaded with Load overrides the whole document.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Heart   HeartConfig   `yaml:"heart"`
	Essence EssenceConfig `yaml:"essence"`

	Archetypes []ArchetypeConfig `yaml:"archetypes"`
	Waves      []WaveConfig      `yaml:"waves"`
	Powers     []PowerConfig     `yaml:"powers"`
	Props      []PropConfig      `yaml:"props"`
}

type EngineConfig struct {
	TickMs int `yaml:"tick_ms"` // Frame interval for the game loop

	// Distance field recompute throttle, in ticks
	FieldMinTicks int `yaml:"field_min_ticks"`
}

type HeartConfig struct {
	Vigor int `yaml:"vigor"` // Hit points; a visitor's bite drains this
}

type EssenceConfig struct {
	Start        int     `yaml:"start"`
	Max          int     `yaml:"max"`
	RegenPerSec  float64 `yaml:"regen_per_sec"`
	BanishBounty int     `yaml:"banish_bounty"` // Paid when a visitor leaves through a gate
}

// ArchetypeConfig describes one visitor kind
type ArchetypeConfig struct {
	Name   string `yaml:"name"`
	StepMs int    `yaml:"step_ms"` // Time to cross one plain floor tile
	Bite   int    `yaml:"bite"`    // Heart vigor drained on arrival
}

// WaveConfig describes one wave of visitors
type WaveConfig struct {
	Archetype    string `yaml:"archetype"`
	Count        int    `yaml:"count"`
	SpawnEveryMs int    `yaml:"spawn_every_ms"`
	BuildGapMs   int    `yaml:"build_gap_ms"` // Quiet time before the wave starts
}

// PowerConfig describes one heart power. A power either writes cost deltas
// into the overlay (CostDelta != 0) or forces a visitor state (State != ""),
// or both.
type PowerConfig struct {
	Name       string `yaml:"name"`
	Key        string `yaml:"key"` // Single-rune activation key in play
	Essence    int    `yaml:"essence"`
	CooldownMs int    `yaml:"cooldown_ms"`
	DurationMs int    `yaml:"duration_ms"`
	Radius     int    `yaml:"radius"`
	CostDelta  int    `yaml:"cost_delta"`
	State      string `yaml:"state"` // "", "dazed", "charmed", "fleeing"
}

// PropConfig describes one placeable prop kind
type PropConfig struct {
	Name      string `yaml:"name"`
	Key       string `yaml:"key"` // Single-rune placement key in play
	Essence   int    `yaml:"essence"`
	Blocking  bool   `yaml:"blocking"`   // Turns the tile into a wall
	CostDelta int    `yaml:"cost_delta"` // Permanent overlay delta while placed
}

// Default returns the shipped tuning
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			TickMs:        33,
			FieldMinTicks: 6,
		},
		Heart: HeartConfig{
			Vigor: 20,
		},
		Essence: EssenceConfig{
			Start:        30,
			Max:          99,
			RegenPerSec:  1.5,
			BanishBounty: 4,
		},
		Archetypes: []ArchetypeConfig{
			{Name: "wanderer", StepMs: 420, Bite: 1},
			{Name: "seeker", StepMs: 300, Bite: 2},
			{Name: "bold", StepMs: 360, Bite: 4},
		},
		Waves: []WaveConfig{
			{Archetype: "wanderer", Count: 6, SpawnEveryMs: 1600, BuildGapMs: 8000},
			{Archetype: "wanderer", Count: 10, SpawnEveryMs: 1200, BuildGapMs: 10000},
			{Archetype: "seeker", Count: 8, SpawnEveryMs: 1100, BuildGapMs: 10000},
			{Archetype: "seeker", Count: 12, SpawnEveryMs: 900, BuildGapMs: 12000},
			{Archetype: "bold", Count: 10, SpawnEveryMs: 1000, BuildGapMs: 12000},
		},
		Powers: []PowerConfig{
			{Name: "mistveil", Key: "1", Essence: 8, CooldownMs: 6000, DurationMs: 5000, Radius: 2, CostDelta: 40},
			{Name: "wisp-lure", Key: "2", Essence: 10, CooldownMs: 9000, DurationMs: 4000, Radius: 3, CostDelta: -8, State: "charmed"},
			{Name: "slumber", Key: "3", Essence: 12, CooldownMs: 10000, DurationMs: 3000, Radius: 2, State: "dazed"},
			{Name: "terror-bloom", Key: "4", Essence: 16, CooldownMs: 14000, DurationMs: 4000, Radius: 3, State: "fleeing"},
		},
		Props: []PropConfig{
			{Name: "bramble", Key: "b", Essence: 6, Blocking: true},
			{Name: "snare", Key: "s", Essence: 4, CostDelta: 25},
		},
	}
}

// Load reads a YAML tuning file
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML tuning document
func Parse(raw []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects configs the systems cannot run on
func (c *Config) Validate() error {
	if c.Engine.TickMs <= 0 {
		return fmt.Errorf("config: tick_ms must be positive")
	}
	if c.Engine.FieldMinTicks < 1 {
		return fmt.Errorf("config: field_min_ticks must be at least 1")
	}
	if c.Heart.Vigor <= 0 {
		return fmt.Errorf("config: heart vigor must be positive")
	}
	if c.Essence.Max < c.Essence.Start {
		return fmt.Errorf("config: essence max %d below start %d", c.Essence.Max, c.Essence.Start)
	}
	if len(c.Archetypes) == 0 {
		return fmt.Errorf("config: no archetypes")
	}
	for _, a := range c.Archetypes {
		if a.Name == "" || a.StepMs <= 0 || a.Bite <= 0 {
			return fmt.Errorf("config: bad archetype %+v", a)
		}
	}
	if len(c.Waves) == 0 {
		return fmt.Errorf("config: no waves")
	}
	for i, w := range c.Waves {
		if w.Count <= 0 || w.SpawnEveryMs <= 0 {
			return fmt.Errorf("config: bad wave %d", i)
		}
		if c.Archetype(w.Archetype) == nil {
			return fmt.Errorf("config: wave %d uses unknown archetype %q", i, w.Archetype)
		}
	}
	for _, p := range c.Powers {
		if p.Name == "" || len([]rune(p.Key)) != 1 || p.DurationMs <= 0 {
			return fmt.Errorf("config: bad power %+v", p)
		}
		if p.CostDelta == 0 && p.State == "" {
			return fmt.Errorf("config: power %q has no effect", p.Name)
		}
		switch p.State {
		case "", "dazed", "charmed", "fleeing":
		default:
			return fmt.Errorf("config: power %q has unknown state %q", p.Name, p.State)
		}
	}
	for _, p := range c.Props {
		if p.Name == "" || len([]rune(p.Key)) != 1 {
			return fmt.Errorf("config: bad prop %+v", p)
		}
		if !p.Blocking && p.CostDelta == 0 {
			return fmt.Errorf("config: prop %q has no effect", p.Name)
		}
	}
	return nil
}

// --- Lookups ---

// Archetype returns the named archetype, nil if absent
func (c *Config) Archetype(name string) *ArchetypeConfig {
	for i := range c.Archetypes {
		if c.Archetypes[i].Name == name {
			return &c.Archetypes[i]
		}
	}
	return nil
}

// Power returns the named power, nil if absent
func (c *Config) Power(name string) *PowerConfig {
	for i := range c.Powers {
		if c.Powers[i].Name == name {
			return &c.Powers[i]
		}
	}
	return nil
}

// PowerByKey returns the power bound to key, nil if absent
func (c *Config) PowerByKey(key rune) *PowerConfig {
	for i := range c.Powers {
		if c.Powers[i].Key == string(key) {
			return &c.Powers[i]
		}
	}
	return nil
}

// Prop returns the named prop kind, nil if absent
func (c *Config) Prop(name string) *PropConfig {
	for i := range c.Props {
		if c.Props[i].Name == name {
			return &c.Props[i]
		}
	}
	return nil
}

// PropByKey returns the prop kind bound to key, nil if absent
func (c *Config) PropByKey(key rune) *PropConfig {
	for i := range c.Props {
		if c.Props[i].Key == string(key) {
			return &c.Props[i]
		}
	}
	return nil
}

// TickInterval returns the frame interval as a duration
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Engine.TickMs) * time.Millisecond
}
