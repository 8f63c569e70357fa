package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/faewild/faemaze/maze"
)

func main() {
	width := flag.Int("width", 33, "layout width (even values round down to odd)")
	height := flag.Int("height", 21, "layout height (even values round down to odd)")
	braiding := flag.Float64("braiding", 0.15, "cycle probability, 0 for a perfect maze")
	gates := flag.Int("gates", 3, "boundary gates to cut")
	moss := flag.Float64("moss", 0.08, "moss density over floor tiles")
	brier := flag.Float64("brier", 0.05, "brier density over floor tiles")
	seed := flag.Int64("seed", 0, "generator seed; 0 derives from the wall clock")
	out := flag.String("o", "", "output file; stdout when empty")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	grid, err := maze.Generate(maze.GenConfig{
		Width:        *width,
		Height:       *height,
		Braiding:     *braiding,
		Gates:        *gates,
		MossDensity:  *moss,
		BrierDensity: *brier,
		Seed:         *seed,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	data := append([]byte(fmt.Sprintf("; faemaze layout, seed %d\n", *seed)), maze.EncodeLayout(grid)...)
	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
