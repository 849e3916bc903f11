package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/tiltcards/internal/config"
	"chosenoffset.com/tiltcards/internal/placeholders"
)

func main() {
	configPath := flag.String("config", "gallery.yaml", "Gallery config file listing the photos")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	portraits := make([]placeholders.Portrait, len(cfg.Assets.Tiles))
	for i, e := range cfg.Assets.Tiles {
		portraits[i] = placeholders.Portrait{Name: e.Name, Path: e.Path}
	}

	if err := placeholders.GenerateAndSave(cfg.Assets.Dir, int(cfg.Layout.TileSize), portraits); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, p := range portraits {
		fmt.Printf("Generated %s/%s\n", cfg.Assets.Dir, p.Path)
	}
}
