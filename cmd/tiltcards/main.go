package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"chosenoffset.com/tiltcards/internal/app"
	"chosenoffset.com/tiltcards/internal/assets"
	"chosenoffset.com/tiltcards/internal/config"
	applog "chosenoffset.com/tiltcards/internal/log"
	ebitenrender "chosenoffset.com/tiltcards/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "gallery.yaml", "Gallery config file (defaults are used if it does not exist)")
	assetDir := flag.String("assets", "", "Photo directory, overriding the config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *assetDir != "" {
		cfg.Assets.Dir = *assetDir
	}

	logger := applog.Must(cfg.Log.Level, cfg.Log.Encoding)
	defer logger.Sync() //nolint:errcheck

	loader := assets.NewLoader(os.DirFS(cfg.Assets.Dir), int(cfg.Layout.TileSize), logger)
	photos := loader.Load(cfg.Assets.Tiles)

	// Initialize the renderer backend (ebiten)
	rend := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	screen := app.NewScreen(cfg, rend, inputMgr, photos, logger)
	defer screen.Close()

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)

	logger.Info("starting gallery")
	if err := engine.RunGame(screen); err != nil {
		logger.Fatal("gallery stopped", zap.Error(err))
	}
}
