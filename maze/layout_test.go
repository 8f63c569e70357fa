package maze

import (
	"bytes"
	"strings"
	"testing"

	"github.com/faewild/faemaze/core"
)

const goodLayout = `; test fixture
#G#####
#.....#
#,###.#
#.#H..#
#&###.#
#.....#
###G###`

func TestParseLayout(t *testing.T) {
	g, err := ParseLayout([]byte(goodLayout))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	if g.Width != 7 || g.Height != 7 {
		t.Errorf("size = %dx%d, want 7x7", g.Width, g.Height)
	}
	if (g.Heart != core.Point{X: 3, Y: 3}) {
		t.Errorf("heart = %v, want {3 3}", g.Heart)
	}
	if len(g.Gates) != 2 {
		t.Errorf("gates = %d, want 2", len(g.Gates))
	}
	if g.TileAt(core.Point{X: 1, Y: 2}) != TileMoss {
		t.Error("moss tile not parsed")
	}
	if g.TileAt(core.Point{X: 1, Y: 4}) != TileBrier {
		t.Error("brier tile not parsed")
	}
	if g.BaseCost(core.Point{X: 1, Y: 2}) != CostMoss {
		t.Error("moss base cost wrong")
	}
	if g.Walkable(core.Point{X: 0, Y: 0}) {
		t.Error("wall reported walkable")
	}
}

func TestParseLayoutErrors(t *testing.T) {
	cases := []struct {
		name   string
		layout string
		want   string
	}{
		{"empty", "", "empty"},
		{"ragged", "###\n##", "row 1"},
		{"no heart", "#G#\n#.#\n###", "no heart"},
		{"two hearts", "#G##\n#HH#\n####", "second heart"},
		{"no gates", "###\n#H#\n###", "no gates"},
		{"interior gate", "#####\n#.G.#\n##H##", "boundary"},
		{"unknown rune", "#G#\n#?#\n#H#", "unknown tile"},
		{"cut off gate", "##G\n###\n#H#", "reach"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLayout([]byte(tc.layout))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	g, err := ParseLayout([]byte(goodLayout))
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}

	encoded := EncodeLayout(g)
	again, err := ParseLayout(encoded)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if !bytes.Equal(encoded, EncodeLayout(again)) {
		t.Error("encode/parse/encode is not stable")
	}
	if again.Heart != g.Heart || len(again.Gates) != len(g.Gates) {
		t.Error("round trip lost heart or gates")
	}
}
