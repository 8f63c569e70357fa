package render

import (
	"fmt"
	"reflect"

	"github.com/gdamore/tcell/v2"

	"github.com/faewild/faemaze/components"
	"github.com/faewild/faemaze/core"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/maze"
	"github.com/faewild/faemaze/systems"
)

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleMoss   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBrier  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleGate   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleHeart  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleProp   = tcell.StyleDefault.Foreground(tcell.ColorSandyBrown)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true).Reverse(true)
)

var visitorStyles = map[components.VisitorState]tcell.Style{
	components.StateWalking: tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	components.StateDazed:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	components.StateCharmed: tcell.StyleDefault.Foreground(tcell.ColorPink).Bold(true),
	components.StateFleeing: tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true),
	components.StateLeaving: tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
}

var (
	visitorType = reflect.TypeOf(&components.VisitorComponent{})
	heartType   = reflect.TypeOf(&components.HeartComponent{})
	propType    = reflect.TypeOf(&components.PropComponent{})
)

// Renderer draws the maze, its occupants, and the HUD onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	powers *systems.PowerSystem
	color  bool
}

func NewRenderer(screen tcell.Screen, powers *systems.PowerSystem, color bool) *Renderer {
	return &Renderer{screen: screen, powers: powers, color: color}
}

// styled passes a style through, or strips it for monochrome terminals
func (r *Renderer) styled(s tcell.Style) tcell.Style {
	if r.color {
		return s
	}
	return tcell.StyleDefault
}

// Draw renders one frame
func (r *Renderer) Draw(ctx *engine.GameContext) {
	r.screen.Clear()

	r.drawTiles(ctx)
	r.drawProps(ctx)
	r.drawVisitors(ctx)
	r.drawCursor(ctx)
	r.drawHUD(ctx)
	if ctx.Over() {
		r.drawBanner(ctx)
	}

	r.screen.Show()
}

func (r *Renderer) drawTiles(ctx *engine.GameContext) {
	now := ctx.Now()
	for y := 0; y < ctx.Grid.Height; y++ {
		for x := 0; x < ctx.Grid.Width; x++ {
			p := core.Point{X: x, Y: y}
			ch, style := tileGlyph(ctx.Grid.TileAt(p))
			style = r.styled(style)
			if r.color && ctx.OverlayView && ctx.Grid.Walkable(p) {
				if delta := ctx.Overlay.DeltaAt(p, now); delta != 0 {
					style = style.Background(heatColor(delta))
				}
			}
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func tileGlyph(t maze.Tile) (rune, tcell.Style) {
	switch t {
	case maze.TileWall:
		return '#', styleWall
	case maze.TileMoss:
		return ',', styleMoss
	case maze.TileBrier:
		return '&', styleBrier
	case maze.TileGate:
		return 'G', styleGate
	case maze.TileHeart:
		return 'H', styleHeart
	default:
		return '.', styleFloor
	}
}

// heatColor shades costlier tiles red and cheapened tiles blue
func heatColor(delta int) tcell.Color {
	v := delta
	if v < 0 {
		v = -v
	}
	if v > 60 {
		v = 60
	}
	intensity := int32(40 + v*2)
	if delta > 0 {
		return tcell.NewRGBColor(intensity, 0, 0)
	}
	return tcell.NewRGBColor(0, 0, intensity)
}

func (r *Renderer) drawProps(ctx *engine.GameContext) {
	for _, e := range ctx.World.GetEntitiesWith(propType) {
		pos, ok := ctx.World.Position(e)
		if !ok {
			continue
		}
		comp, _ := ctx.World.GetComponent(e, propType)
		prop := comp.(*components.PropComponent)
		ch := 'S'
		if prop.Blocking {
			ch = 'B'
		}
		r.screen.SetContent(pos.X, pos.Y, ch, nil, r.styled(styleProp))
	}
}

func (r *Renderer) drawVisitors(ctx *engine.GameContext) {
	for _, e := range ctx.World.GetEntitiesWith(visitorType) {
		pos, ok := ctx.World.Position(e)
		if !ok {
			continue
		}
		comp, _ := ctx.World.GetComponent(e, visitorType)
		v := comp.(*components.VisitorComponent)
		ch := 'v'
		if len(v.Archetype) > 0 {
			ch = rune(v.Archetype[0])
		}
		r.screen.SetContent(pos.X, pos.Y, ch, nil, r.styled(visitorStyles[v.State]))
	}
}

func (r *Renderer) drawCursor(ctx *engine.GameContext) {
	ch, style := tileGlyph(ctx.Grid.TileAt(ctx.Cursor))
	r.screen.SetContent(ctx.Cursor.X, ctx.Cursor.Y, ch, nil, r.styled(style).Reverse(true))
}

func (r *Renderer) drawHUD(ctx *engine.GameContext) {
	top := ctx.Grid.Height
	now := ctx.Now()

	vigor, maxVigor := 0, 0
	if comp, ok := ctx.World.GetComponent(ctx.HeartEntity, heartType); ok {
		h := comp.(*components.HeartComponent)
		vigor, maxVigor = h.Vigor, h.MaxVigor
	}

	wave := ctx.WaveIndex + 1
	if wave > len(ctx.Cfg.Waves) {
		wave = len(ctx.Cfg.Waves)
	}
	r.print(0, top, r.styled(styleHUD), fmt.Sprintf("vigor %d/%d  essence %d  wave %d/%d",
		vigor, maxVigor, ctx.Essence, wave, len(ctx.Cfg.Waves)))

	line := "powers:"
	for _, p := range ctx.Cfg.Powers {
		if remaining := r.powers.CooldownRemaining(p.Name, now); remaining > 0 {
			line += fmt.Sprintf("  [%s] %s %.1fs", p.Key, p.Name, remaining.Seconds())
		} else {
			line += fmt.Sprintf("  [%s] %s", p.Key, p.Name)
		}
	}
	r.print(0, top+1, r.styled(styleHUD), line)

	line = "props:"
	for _, p := range ctx.Cfg.Props {
		line += fmt.Sprintf("  [%s] %s", p.Key, p.Name)
	}
	line += "  [x] clear  [o] heat  [q] quit"
	r.print(0, top+2, r.styled(styleHUD), line)

	if ctx.StatusMessage != "" {
		r.print(0, top+3, r.styled(styleStatus), ctx.StatusMessage)
	}
}

func (r *Renderer) drawBanner(ctx *engine.GameContext) {
	msg := " THE HEART HAS FALLEN "
	if ctx.Phase == engine.PhaseVictory {
		msg = " THE MAZE HOLDS "
	}
	x := (ctx.Grid.Width - len(msg)) / 2
	if x < 0 {
		x = 0
	}
	r.print(x, ctx.Grid.Height/2, r.styled(styleBanner).Reverse(true), msg)
}

func (r *Renderer) print(x, y int, style tcell.Style, s string) {
	for i, ch := range s {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
