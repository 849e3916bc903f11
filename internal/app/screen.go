// Package app is the gallery screen: it pumps pointer input into the shared
// touch tracker, routes taps to tiles and draws every tile tilted and shaded.
package app

import (
	"image/color"

	"go.uber.org/zap"

	"chosenoffset.com/tiltcards/internal/assets"
	"chosenoffset.com/tiltcards/internal/config"
	"chosenoffset.com/tiltcards/internal/core/geom"
	"chosenoffset.com/tiltcards/internal/core/touch"
	"chosenoffset.com/tiltcards/internal/gallery"
	"chosenoffset.com/tiltcards/internal/render"
)

// Gallery palette
var (
	BackgroundColor = color.RGBA{0, 0, 0, 255}
	CardColor       = color.RGBA{255, 255, 255, 255}
	SelectedColor   = color.RGBA{0, 128, 0, 255}
	HUDColor        = color.RGBA{240, 240, 240, 255}
	HUDBackground   = color.RGBA{0, 0, 0, 160}
)

// Screen implements render.Game for the photo gallery
type Screen struct {
	cfg      *config.Config
	renderer render.Renderer
	input    render.InputManager
	logger   *zap.Logger

	tracker *touch.Tracker
	taps    *touch.TapDetector
	gallery *gallery.Gallery
	faces   []render.Image
	white   render.Image

	events        []render.PointerEvent
	width, height int
	showHUD       bool
}

var _ render.Game = (*Screen)(nil)

// NewScreen creates the gallery screen with one tile per photo
func NewScreen(cfg *config.Config, r render.Renderer, input render.InputManager, photos []assets.Photo, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}

	tracker := touch.NewTracker()
	s := &Screen{
		cfg:      cfg,
		renderer: r,
		input:    input,
		logger:   logger,
		tracker:  tracker,
		taps:     touch.NewTapDetector(cfg.Input.TapSlop),
		gallery:  gallery.New(cfg.Engine(), tracker, cfg.GalleryLayout(), assets.Entries(photos)),
		faces:    make([]render.Image, len(photos)),
		showHUD:  cfg.Window.ShowHUD,
	}

	for i, p := range photos {
		s.faces[i] = r.NewImageFromImage(p.Image)
	}
	s.white = r.NewImage(1, 1)
	s.white.Fill(color.White)

	return s
}

// Gallery returns the tiles on this screen
func (s *Screen) Gallery() *gallery.Gallery {
	return s.gallery
}

// Touch returns the read-only view of the screen's touch position
func (s *Screen) Touch() touch.Reader {
	return s.tracker
}

// Update pumps input for one tick.
func (s *Screen) Update() error {
	if s.width > 0 && s.height > 0 {
		s.gallery.Layout(float64(s.width), float64(s.height))
	}

	if s.input.IsKeyJustPressed(render.KeyH) {
		s.showHUD = !s.showHUD
	}
	if s.input.IsKeyJustPressed(render.KeyEscape) {
		s.gallery.ClearSelection()
		s.logger.Debug("selection cleared")
	}

	s.events = s.input.AppendPointerEvents(s.events[:0])
	for _, pe := range s.events {
		s.HandlePointer(toTouchEvent(pe))
	}
	return nil
}

// HandlePointer stores the pointer position for every tile, then toggles the
// tile under a completed tap.
func (s *Screen) HandlePointer(ev touch.Event) {
	s.tracker.Handle(ev)

	p, ok := s.taps.Handle(ev)
	if !ok {
		return
	}
	if t, ok := s.gallery.Tap(p); ok {
		s.logger.Debug("tile toggled",
			zap.String("tile", t.Name),
			zap.Bool("selected", t.Selected()))
	}
}

// Layout uses the outside size as the logical screen size so tiles reflow
// when the window or device rotates.
func (s *Screen) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.width || outsideHeight != s.height {
		s.logger.Debug("screen resized",
			zap.Int("width", outsideWidth),
			zap.Int("height", outsideHeight))
	}
	s.width, s.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close releases the tile images and subscriptions
func (s *Screen) Close() {
	s.gallery.Close()
	for _, f := range s.faces {
		f.Dispose()
	}
	s.white.Dispose()
}

func toTouchEvent(pe render.PointerEvent) touch.Event {
	var phase touch.Phase
	switch pe.Phase {
	case render.PointerDown:
		phase = touch.PhaseDown
	case render.PointerMove:
		phase = touch.PhaseMove
	case render.PointerUp:
		phase = touch.PhaseUp
	}
	return touch.Event{Pointer: pe.ID, Phase: phase, Page: geom.Point{X: pe.X, Y: pe.Y}}
}
