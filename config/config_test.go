package config

import (
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
}

func TestParseOverrides(t *testing.T) {
	doc := `
engine:
  tick_ms: 50
  field_min_ticks: 3
heart:
  vigor: 5
essence:
  start: 10
  max: 20
  regen_per_sec: 0.5
  banish_bounty: 2
archetypes:
  - name: slug
    step_ms: 800
    bite: 1
waves:
  - archetype: slug
    count: 3
    spawn_every_ms: 2000
    build_gap_ms: 1000
powers:
  - name: hush
    key: "1"
    essence: 5
    cooldown_ms: 4000
    duration_ms: 2000
    radius: 1
    state: dazed
props:
  - name: hedge
    key: h
    essence: 3
    blocking: true
`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if c.Engine.TickMs != 50 || c.Heart.Vigor != 5 {
		t.Errorf("overrides not applied: %+v", c)
	}
	if a := c.Archetype("slug"); a == nil || a.StepMs != 800 {
		t.Errorf("archetype lookup = %+v", a)
	}
	if p := c.PowerByKey('1'); p == nil || p.Name != "hush" {
		t.Errorf("PowerByKey = %+v", p)
	}
	if p := c.PropByKey('h'); p == nil || !p.Blocking {
		t.Errorf("PropByKey = %+v", p)
	}
	if c.PowerByKey('9') != nil {
		t.Error("unknown key returned a power")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero tick", func(c *Config) { c.Engine.TickMs = 0 }, "tick_ms"},
		{"no vigor", func(c *Config) { c.Heart.Vigor = 0 }, "vigor"},
		{"essence range", func(c *Config) { c.Essence.Max = 1 }, "essence max"},
		{"no archetypes", func(c *Config) { c.Archetypes = nil }, "no archetypes"},
		{"unknown wave archetype", func(c *Config) { c.Waves[0].Archetype = "ghost" }, "unknown archetype"},
		{"effectless power", func(c *Config) { c.Powers[0].CostDelta = 0; c.Powers[0].State = "" }, "no effect"},
		{"bad power state", func(c *Config) { c.Powers[0].State = "confused" }, "unknown state"},
		{"wide key", func(c *Config) { c.Powers[0].Key = "12" }, "bad power"},
		{"effectless prop", func(c *Config) { c.Props[1].CostDelta = 0 }, "no effect"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
