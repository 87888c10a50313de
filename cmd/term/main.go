package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/scenario"
	"github.com/Garsondee/holdfast/internal/sim"
	"github.com/Garsondee/holdfast/internal/term"
	"github.com/Garsondee/holdfast/pkg/logger"
)

func main() {
	scenarioName := flag.String("scenario", "river-fort", "scenario to play")
	catalogPath := flag.String("catalog", "", "JSON catalog overriding the built-in tables")
	seed := flag.Int64("seed", 1, "wave RNG seed")
	logPath := flag.String("log", "", "write logs to this file (default: discard)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger.InitTo(logOut)

	cat := catalog.Default()
	if *catalogPath != "" {
		var err error
		if cat, err = catalog.Load(*catalogPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg := sim.DefaultConfig()
	cfg.Seed = *seed
	w, err := scenario.Build(*scenarioName, cat, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	sound := &term.Sound{}
	if !*mute {
		if err := sound.Init(); err != nil {
			// The game runs without sound.
			logger.Component("term").WithError(err).Warn("audio init failed")
		}
	}
	defer sound.Close()

	term.NewApp(screen, w, sound).Run()
}
