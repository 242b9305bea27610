//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jon5th5n/neuralcellularautomata/internal/app"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := app.NewLogger(os.Stderr, cfg.LogJSON)
	world, err := cfg.Load()
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	game := app.New(world, cfg.HUDWidth, logger)
	w, h := game.Layout(0, 0)
	settings := world.Config()
	logger.Info("starting viewer",
		"preset", world.Name(),
		"width", settings.Grid.Width,
		"height", settings.Grid.Height,
		"tps", settings.Display.TPS,
		"render_every", settings.Display.RenderEvery,
	)

	ebiten.SetWindowTitle("neural cellular automata - " + world.Name())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
