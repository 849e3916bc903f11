package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"chosenoffset.com/tiltcards/internal/assets"
	"chosenoffset.com/tiltcards/internal/config"
	"chosenoffset.com/tiltcards/internal/feedback"
	applog "chosenoffset.com/tiltcards/internal/log"
	"chosenoffset.com/tiltcards/internal/term"
)

func main() {
	configPath := flag.String("config", "gallery.yaml", "Gallery config file (defaults are used if it does not exist)")
	sound := flag.Bool("sound", false, "Click on every toggle, overriding the config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *sound {
		cfg.Terminal.Sound = true
	}

	// The terminal owns stdout, so only warnings and errors reach stderr.
	level := cfg.Log.Level
	if level == "debug" || level == "info" {
		level = "warn"
	}
	logger := applog.Must(level, cfg.Log.Encoding)
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Error("terminal gallery failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	loader := assets.NewLoader(os.DirFS(cfg.Assets.Dir), int(cfg.Layout.TileSize), logger)
	photos := loader.Load(cfg.Assets.Tiles)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	var sounder term.Sounder
	if cfg.Terminal.Sound {
		clicker := feedback.NewClicker()
		if err := clicker.Initialize(); err != nil {
			// Non-fatal, the gallery works without sound
			logger.Warn("audio initialization failed", zap.Error(err))
		} else {
			defer clicker.Close()
			sounder = clicker
		}
	}

	t := term.New(screen, cfg, photos, sounder, logger)
	defer t.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := t.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
