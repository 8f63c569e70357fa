package maze

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/faewild/faemaze/core"
)

// Plain-text layout format, one rune per tile:
//
//	#  wall
//	.  floor
//	,  moss
//	&  brier
//	G  gate (boundary only)
//	H  heart (exactly one)
//
// Rows must be equal length. Blank lines and lines starting with ';'
// are ignored so layouts can carry comments.

const (
	runeWall  = '#'
	runeFloor = '.'
	runeMoss  = ','
	runeBrier = '&'
	runeGate  = 'G'
	runeHeart = 'H'
)

// ParseLayout decodes the text layout format into a validated grid
func ParseLayout(data []byte) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout: empty")
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("layout: row %d has %d tiles, want %d", i, len(row), width)
		}
	}

	g := NewGrid(width, len(rows))
	heartSeen := false

	for y, row := range rows {
		for x := 0; x < width; x++ {
			p := core.Point{X: x, Y: y}
			switch row[x] {
			case runeWall:
				g.SetTile(p, TileWall)
			case runeFloor:
				g.SetTile(p, TileFloor)
			case runeMoss:
				g.SetTile(p, TileMoss)
			case runeBrier:
				g.SetTile(p, TileBrier)
			case runeGate:
				if !g.OnBoundary(p) {
					return nil, fmt.Errorf("layout: gate at %d,%d is not on the boundary", x, y)
				}
				g.SetTile(p, TileGate)
				g.Gates = append(g.Gates, p)
			case runeHeart:
				if heartSeen {
					return nil, fmt.Errorf("layout: second heart at %d,%d", x, y)
				}
				heartSeen = true
				g.SetTile(p, TileHeart)
				g.Heart = p
			default:
				return nil, fmt.Errorf("layout: unknown tile %q at %d,%d", row[x], x, y)
			}
		}
	}

	if !heartSeen {
		return nil, fmt.Errorf("layout: no heart")
	}
	if len(g.Gates) == 0 {
		return nil, fmt.Errorf("layout: no gates")
	}
	if !g.Reachable(g.Gates...) {
		return nil, fmt.Errorf("layout: not every gate can reach the heart")
	}

	return g, nil
}

// EncodeLayout renders a grid back into the text layout format
func EncodeLayout(g *Grid) []byte {
	var buf bytes.Buffer
	buf.Grow((g.Width + 1) * g.Height)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			switch g.TileAt(core.Point{X: x, Y: y}) {
			case TileFloor:
				buf.WriteByte(runeFloor)
			case TileMoss:
				buf.WriteByte(runeMoss)
			case TileBrier:
				buf.WriteByte(runeBrier)
			case TileGate:
				buf.WriteByte(runeGate)
			case TileHeart:
				buf.WriteByte(runeHeart)
			default:
				buf.WriteByte(runeWall)
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// LayoutHash returns a short fingerprint of the encoded layout, used to
// group ledger runs played on the same maze
func LayoutHash(g *Grid) string {
	sum := sha256.Sum256(EncodeLayout(g))
	return hex.EncodeToString(sum[:8])
}
