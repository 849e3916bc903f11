// Package config provides the gallery configuration.
// Settings are loaded from a YAML file layered over built-in defaults, so a
// deployment only has to spell out what it changes.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/tiltcards/internal/core/geom"
	"chosenoffset.com/tiltcards/internal/core/tilt"
	"chosenoffset.com/tiltcards/internal/core/touch"
	"chosenoffset.com/tiltcards/internal/gallery"
	"chosenoffset.com/tiltcards/internal/render/lighting"
)

// Config holds all gallery settings
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Layout   LayoutConfig   `yaml:"layout"`
	Tilt     TiltConfig     `yaml:"tilt"`
	Lighting LightingConfig `yaml:"lighting"`
	Input    InputConfig    `yaml:"input"`
	Assets   AssetsConfig   `yaml:"assets"`
	Terminal TerminalConfig `yaml:"terminal"`
	Log      LogConfig      `yaml:"log"`
}

// WindowConfig sizes the desktop window
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	ShowHUD   bool   `yaml:"show_hud"` // Touch and angle readout
}

// LayoutConfig is the tile box model, in screen units
type LayoutConfig struct {
	TileSize float64 `yaml:"tile_size"`
	Margin   float64 `yaml:"margin"`
	Border   float64 `yaml:"border"`   // Selection border width
	SafeTop  float64 `yaml:"safe_top"` // Inset above the first row
}

// TiltConfig tunes the rotation mapping
type TiltConfig struct {
	MaxRotation float64 `yaml:"max_rotation"` // Radians
	Sensitivity float64 `yaml:"sensitivity"`  // Offset giving half of max_rotation
	Perspective float64 `yaml:"perspective"`  // Eye distance; 0 is orthographic
}

// LightingConfig places the gallery light
type LightingConfig struct {
	Direction  [3]float64 `yaml:"direction"` // Normalised on load
	MaxOpacity float64    `yaml:"max_opacity"`
}

// InputConfig tunes gesture recognition
type InputConfig struct {
	TapSlop float64 `yaml:"tap_slop"`
}

// TileEntry names one photo
type TileEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"` // Relative to the asset directory
}

// AssetsConfig locates the photos. An empty tile list means every image in Dir.
type AssetsConfig struct {
	Dir   string      `yaml:"dir"`
	Tiles []TileEntry `yaml:"tiles"`
}

// TerminalConfig maps terminal cells to screen units
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	Sound      bool    `yaml:"sound"` // Click on tap
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console or json
}

// DefaultConfig returns the five-photo gallery with 150-unit tiles
func DefaultConfig() *Config {
	dir := lighting.DefaultDirection()
	return &Config{
		Window: WindowConfig{
			Width:     540,
			Height:    960,
			Title:     "Tilt Cards",
			Resizable: true,
		},
		Layout: LayoutConfig{
			TileSize: 150,
			Margin:   10,
			Border:   10,
		},
		Tilt: TiltConfig{
			MaxRotation: tilt.MaxRotation,
			Sensitivity: tilt.Sensitivity,
			Perspective: 1000,
		},
		Lighting: LightingConfig{
			Direction:  [3]float64{dir.X, dir.Y, dir.Z},
			MaxOpacity: lighting.DefaultMaxOpacity,
		},
		Input: InputConfig{
			TapSlop: touch.DefaultTapSlop,
		},
		Assets: AssetsConfig{
			Dir: "assets",
			Tiles: []TileEntry{
				{Name: "april", Path: "april.png"},
				{Name: "jean_ralphio", Path: "jean_ralphio.jpg"},
				{Name: "jerry", Path: "jerry.jpg"},
				{Name: "leslie", Path: "leslie.jpg"},
				{Name: "tom", Path: "tom.png"},
			},
		},
		Terminal: TerminalConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// LoadConfig loads the config from a YAML file
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads YAML over the defaults and applies fallbacks
func Decode(r io.Reader) (*Config, error) {
	cfg := DefaultConfig() // Start with defaults
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks replaces unusable values with their defaults. Nothing is
// rejected.
func (c *Config) applyFallbacks() {
	def := DefaultConfig()

	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Layout.TileSize <= 0 {
		c.Layout.TileSize = def.Layout.TileSize
	}
	if c.Layout.Margin < 0 {
		c.Layout.Margin = def.Layout.Margin
	}
	if c.Layout.Border < 0 || c.Layout.Border*2 >= c.Layout.TileSize {
		c.Layout.Border = def.Layout.Border
	}
	if c.Tilt.MaxRotation <= 0 || c.Tilt.MaxRotation >= math.Pi/2 {
		c.Tilt.MaxRotation = def.Tilt.MaxRotation
	}
	if c.Tilt.Sensitivity <= 0 {
		c.Tilt.Sensitivity = def.Tilt.Sensitivity
	}
	if c.Lighting.Direction == [3]float64{} {
		c.Lighting.Direction = def.Lighting.Direction
	}
	if c.Lighting.MaxOpacity < 0 || c.Lighting.MaxOpacity > 1 {
		c.Lighting.MaxOpacity = def.Lighting.MaxOpacity
	}
	if c.Input.TapSlop <= 0 {
		c.Input.TapSlop = def.Input.TapSlop
	}
	if c.Terminal.CellWidth <= 0 {
		c.Terminal.CellWidth = def.Terminal.CellWidth
	}
	if c.Terminal.CellHeight <= 0 {
		c.Terminal.CellHeight = def.Terminal.CellHeight
	}
}

// Engine builds the orientation engine described by the config
func (c *Config) Engine() *tilt.Engine {
	d := c.Lighting.Direction
	light := lighting.NewDirectional(geom.Vec3{X: d[0], Y: d[1], Z: d[2]})
	return &tilt.Engine{
		MaxRotation: c.Tilt.MaxRotation,
		Sensitivity: c.Tilt.Sensitivity,
		Rig:         lighting.NewRig(light, c.Lighting.MaxOpacity),
	}
}

// GalleryLayout returns the tile box model
func (c *Config) GalleryLayout() gallery.Layout {
	return gallery.Layout{
		TileSize: c.Layout.TileSize,
		Margin:   c.Layout.Margin,
		SafeTop:  c.Layout.SafeTop,
	}
}
