package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/game"
	"github.com/Garsondee/holdfast/internal/sim"
	"github.com/Garsondee/holdfast/pkg/logger"
)

func main() {
	scenarioName := flag.String("scenario", "river-fort", "scenario to play")
	catalogPath := flag.String("catalog", "", "JSON catalog overriding the built-in tables")
	seed := flag.Int64("seed", 0, "wave RNG seed (0 = time based)")
	flag.Parse()

	logger.Init()

	cat := catalog.Default()
	if *catalogPath != "" {
		var err error
		if cat, err = catalog.Load(*catalogPath); err != nil {
			log.Fatal(err)
		}
	}
	cfg := sim.DefaultConfig()
	cfg.Seed = *seed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	g, err := game.New(game.Options{Scenario: *scenarioName, Catalog: cat, Config: cfg})
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Holdfast")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
