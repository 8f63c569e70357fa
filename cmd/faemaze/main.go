package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/faewild/faemaze/audio"
	"github.com/faewild/faemaze/components"
	"github.com/faewild/faemaze/config"
	"github.com/faewild/faemaze/engine"
	"github.com/faewild/faemaze/events"
	"github.com/faewild/faemaze/ledger"
	"github.com/faewild/faemaze/maze"
	"github.com/faewild/faemaze/render"
	"github.com/faewild/faemaze/systems"
)

type game struct {
	ctx      *engine.GameContext
	screen   tcell.Screen
	renderer *render.Renderer
	cues     *audio.Cues
	store    *ledger.Store

	layoutHash string
	recorded   bool
}

func main() {
	layoutPath := flag.String("layout", "", "maze layout file; generated when empty")
	configPath := flag.String("config", "", "YAML tuning file; built-in defaults when empty")
	seed := flag.Int64("seed", time.Now().UnixNano(), "generator and gameplay seed")
	mute := flag.Bool("mute", false, "disable audio cues")
	dbPath := flag.String("db", "faemaze.db", "run ledger database; empty disables it")
	color := flag.Bool("color", true, "colored rendering; disable for plain terminals")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fatal(err)
		}
	}

	grid, err := loadGrid(*layoutPath, *seed)
	if err != nil {
		fatal(err)
	}

	ctx := engine.NewGameContext(cfg, grid, engine.NewMonotonicTimeProvider(), *seed)
	heart := ctx.World.CreateEntity()
	ctx.World.AddComponent(heart, &components.HeartComponent{
		Vigor:    cfg.Heart.Vigor,
		MaxVigor: cfg.Heart.Vigor,
	})
	ctx.World.SetPosition(heart, grid.Heart)
	ctx.HeartEntity = heart

	power := wireSystems(ctx)

	cues := audio.NewCues(*mute)
	defer cues.Close()
	ctx.Router.Register(cues)

	var store *ledger.Store
	if *dbPath != "" {
		if store, err = ledger.Open(*dbPath); err != nil {
			log.Printf("ledger disabled: %v", err)
		} else {
			defer store.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal(err)
	}
	if err := screen.Init(); err != nil {
		fatal(err)
	}
	defer func() {
		// Restore the terminal even when a panic is on its way out
		screen.Fini()
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	g := &game{
		ctx:        ctx,
		screen:     screen,
		renderer:   render.NewRenderer(screen, power, *color),
		cues:       cues,
		store:      store,
		layoutHash: maze.LayoutHash(grid),
	}
	g.run()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func loadGrid(path string, seed int64) (*maze.Grid, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return maze.ParseLayout(data)
	}
	return maze.Generate(maze.GenConfig{
		Width:        33,
		Height:       21,
		Braiding:     0.15,
		Gates:        3,
		MossDensity:  0.08,
		BrierDensity: 0.05,
		Seed:         seed,
	})
}

// wireSystems registers the full system roster; the power system comes
// back out because the HUD reads its cooldowns
func wireSystems(ctx *engine.GameContext) *systems.PowerSystem {
	power := systems.NewPowerSystem()
	props := systems.NewPropSystem()
	nav := systems.NewNavigationSystem()
	heart := systems.NewHeartSystem()
	score := systems.NewScoreSystem()

	ctx.World.AddSystem(systems.NewSpawnSystem())
	ctx.World.AddSystem(power)
	ctx.World.AddSystem(props)
	ctx.World.AddSystem(nav)
	ctx.World.AddSystem(systems.NewMovementSystem())
	ctx.World.AddSystem(heart)
	ctx.World.AddSystem(score)

	ctx.Router.Register(power)
	ctx.Router.Register(props)
	ctx.Router.Register(nav)
	ctx.Router.Register(heart)
	ctx.Router.Register(score)
	return power
}

func (g *game) run() {
	ticker := time.NewTicker(g.ctx.Cfg.TickInterval())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				g.record("abandoned")
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			g.ctx.IncrementFrameNumber()
			g.ctx.Router.DispatchAll(g.ctx)
			g.ctx.World.Update(g.ctx, dt)

			if g.ctx.Over() {
				outcome := "defeat"
				if g.ctx.Phase == engine.PhaseVictory {
					outcome = "victory"
				}
				g.record(outcome)
			}
			g.renderer.Draw(g.ctx)
		}
	}
}

func (g *game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.ctx.MoveCursor(0, -1)
		case tcell.KeyDown:
			g.ctx.MoveCursor(0, 1)
		case tcell.KeyLeft:
			g.ctx.MoveCursor(-1, 0)
		case tcell.KeyRight:
			g.ctx.MoveCursor(1, 0)
		case tcell.KeyRune:
			return g.handleRune(ev.Rune())
		}

	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *game) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'h':
		g.ctx.MoveCursor(-1, 0)
	case 'j':
		g.ctx.MoveCursor(0, 1)
	case 'k':
		g.ctx.MoveCursor(0, -1)
	case 'l':
		g.ctx.MoveCursor(1, 0)
	case 'o':
		g.ctx.OverlayView = !g.ctx.OverlayView
	case 'x':
		g.ctx.Emit(events.EventPropClear, &events.PropClearPayload{Cell: g.ctx.Cursor})
	default:
		if p := g.ctx.Cfg.PowerByKey(r); p != nil {
			g.ctx.Emit(events.EventPowerInvoke, &events.PowerInvokePayload{
				Power:  p.Name,
				Center: g.ctx.Cursor,
			})
		} else if pr := g.ctx.Cfg.PropByKey(r); pr != nil {
			g.ctx.Emit(events.EventPropPlace, &events.PropPlacePayload{
				Kind: pr.Name,
				Cell: g.ctx.Cursor,
			})
		}
	}
	return true
}

// record writes the run to the ledger once; later outcomes are ignored
func (g *game) record(outcome string) {
	if g.recorded || g.store == nil {
		return
	}
	g.recorded = true

	now := g.ctx.Now()
	err := g.store.Record(ledger.Run{
		ID:         g.ctx.Stats.RunID,
		Seed:       g.ctx.Stats.Seed,
		LayoutHash: g.layoutHash,
		Outcome:    outcome,
		Waves:      g.ctx.Stats.Waves,
		Banished:   g.ctx.Stats.Banished,
		Struck:     g.ctx.Stats.Struck,
		Duration:   now.Sub(g.ctx.Stats.StartedAt),
		FinishedAt: now,
	})
	if err != nil {
		// The screen owns the terminal here; surface the failure on the HUD
		g.ctx.StatusMessage = fmt.Sprintf("ledger write failed: %v", err)
	}
}
