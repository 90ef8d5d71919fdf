//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"ripple/internal/app"
	"ripple/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	viewport := core.Size{W: cfg.Width, H: cfg.Height}
	sched := core.NewScheduler(core.SystemClock{}, logger)
	ctrl := app.NewController(cfg.Water(), viewport, sched, logger)
	if err := ctrl.Init(); err != nil {
		// Init has already logged the failure.
		os.Exit(1)
	}
	defer ctrl.Dispose()

	game := app.New(ctrl, cfg.HUDWidth, cfg.Seed)

	ebiten.SetWindowTitle("ripple")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width+max(cfg.HUDWidth, 0), cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		ctrl.Dispose()
		log.Fatal(err)
	}
}
