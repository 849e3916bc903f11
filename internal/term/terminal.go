// Package term runs the gallery in a terminal. Each cell stands for a patch
// of screen units; the mouse plays the part of the finger.
package term

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"chosenoffset.com/tiltcards/internal/assets"
	"chosenoffset.com/tiltcards/internal/config"
	"chosenoffset.com/tiltcards/internal/core/geom"
	"chosenoffset.com/tiltcards/internal/core/tilt"
	"chosenoffset.com/tiltcards/internal/core/touch"
	"chosenoffset.com/tiltcards/internal/gallery"
	"chosenoffset.com/tiltcards/internal/render/lighting"
)

const frameInterval = 33 * time.Millisecond

// Terminal palette
var (
	BackgroundColor = colorful.Color{}
	CardColor       = colorful.Color{R: 1, G: 1, B: 1}
	SelectedColor   = colorful.Color{R: 0, G: 128.0 / 255, B: 0}
	StatusStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
)

// Sounder is told about every toggle
type Sounder interface {
	Click(selected bool)
}

// Terminal draws the gallery onto a tcell screen
type Terminal struct {
	screen tcell.Screen
	cfg    *config.Config
	logger *zap.Logger
	sound  Sounder

	tracker *touch.Tracker
	taps    *touch.TapDetector
	gallery *gallery.Gallery

	pressed    bool
	cols, rows int
}

// New creates a terminal front end on an initialised screen. sound and
// logger may be nil.
func New(screen tcell.Screen, cfg *config.Config, photos []assets.Photo, sound Sounder, logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}

	tracker := touch.NewTracker()
	t := &Terminal{
		screen:  screen,
		cfg:     cfg,
		logger:  logger,
		sound:   sound,
		tracker: tracker,
		taps:    touch.NewTapDetector(cfg.Input.TapSlop),
		gallery: gallery.New(cfg.Engine(), tracker, cfg.GalleryLayout(), assets.Entries(photos)),
	}

	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault.Background(toTcell(BackgroundColor)))
	t.resize()
	return t
}

// Gallery returns the tiles on this terminal
func (t *Terminal) Gallery() *gallery.Gallery {
	return t.gallery
}

// Touch returns the read-only view of the mouse position
func (t *Terminal) Touch() touch.Reader {
	return t.tracker
}

// Run polls events and redraws until the user quits or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go t.pollEvents(eventChan, done)

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !t.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			t.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done
// is closed
func (t *Terminal) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'c' {
			t.gallery.ClearSelection()
			t.logger.Debug("selection cleared")
		}

	case *tcell.EventMouse:
		t.handleMouse(ev)

	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
	return true
}

// handleMouse turns button-1 state changes into pointer phases. Motion with
// no button held is ignored.
func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	var phase touch.Phase
	switch {
	case down && !t.pressed:
		phase = touch.PhaseDown
	case down:
		phase = touch.PhaseMove
	case t.pressed:
		phase = touch.PhaseUp
	default:
		return
	}
	t.pressed = down

	t.handlePointer(touch.Event{Phase: phase, Page: t.PagePoint(x, y)})
}

func (t *Terminal) handlePointer(ev touch.Event) {
	t.tracker.Handle(ev)

	p, ok := t.taps.Handle(ev)
	if !ok {
		return
	}
	tile, ok := t.gallery.Tap(p)
	if !ok {
		return
	}
	t.logger.Debug("tile toggled",
		zap.String("tile", tile.Name),
		zap.Bool("selected", tile.Selected()))
	if t.sound != nil {
		t.sound.Click(tile.Selected())
	}
}

// PagePoint returns the screen-unit position of the centre of a cell
func (t *Terminal) PagePoint(col, row int) geom.Point {
	return geom.Point{
		X: (float64(col) + 0.5) * t.cfg.Terminal.CellWidth,
		Y: (float64(row) + 0.5) * t.cfg.Terminal.CellHeight,
	}
}

// resize lays the tiles out over every row but the status line
func (t *Terminal) resize() {
	t.cols, t.rows = t.screen.Size()
	w := float64(t.cols) * t.cfg.Terminal.CellWidth
	h := float64(max(0, t.rows-1)) * t.cfg.Terminal.CellHeight
	t.gallery.Layout(w, h)
	t.logger.Debug("terminal resized",
		zap.Int("cols", t.cols),
		zap.Int("rows", t.rows))
}

// Draw paints every tile and the status line, then shows the screen
func (t *Terminal) Draw() {
	t.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(BackgroundColor)))

	// Selected tiles last so they sit over their neighbours.
	for _, tile := range t.gallery.Tiles() {
		if !tile.Selected() {
			t.drawTile(tile)
		}
	}
	for _, tile := range t.gallery.Tiles() {
		if tile.Selected() {
			t.drawTile(tile)
		}
	}

	t.drawStatus()
	t.screen.Show()
}

func (t *Terminal) drawTile(tile *gallery.Tile) {
	if !tile.Measured() {
		return
	}

	o := tile.Orientation()
	bounds := tile.Bounds()
	pivot := bounds.Center()
	perspective := t.cfg.Tilt.Perspective

	outer := tilt.Project(bounds, pivot, o, perspective)
	inner := outer
	frame := CardColor
	if tile.Selected() {
		inner = tilt.Project(bounds.Inset(t.cfg.Layout.Border), pivot, o, perspective)
		frame = SelectedColor
	}

	face := Shaded(colorful.Color{
		R: float64(tile.Swatch.R) / 255,
		G: float64(tile.Swatch.G) / 255,
		B: float64(tile.Swatch.B) / 255,
	}, o.Shade)
	faceStyle := tcell.StyleDefault.Background(toTcell(face))
	frameStyle := tcell.StyleDefault.Background(toTcell(frame))

	c0, r0, c1, r1 := t.cellSpan(outer)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			p := t.PagePoint(col, row)
			switch {
			case inner.Contains(p):
				t.screen.SetContent(col, row, ' ', nil, faceStyle)
			case outer.Contains(p):
				t.screen.SetContent(col, row, ' ', nil, frameStyle)
			}
		}
	}

	t.drawLabel(tile.Name, inner, faceStyle.Foreground(labelColor(face)))
}

// drawLabel centres name on the quad, keeping only the runes that land
// inside it
func (t *Terminal) drawLabel(name string, q tilt.Quad, style tcell.Style) {
	var cx, cy float64
	for _, p := range q {
		cx += p.X / 4
		cy += p.Y / 4
	}
	runes := []rune(name)
	row := int(math.Floor(cy / t.cfg.Terminal.CellHeight))
	start := int(math.Floor(cx/t.cfg.Terminal.CellWidth)) - len(runes)/2

	for i, r := range runes {
		col := start + i
		if col < 0 || col >= t.cols || row < 0 || row >= t.rows-1 {
			continue
		}
		if q.Contains(t.PagePoint(col, row)) {
			t.screen.SetContent(col, row, r, nil, style)
		}
	}
}

// cellSpan returns the inclusive cell range covering q, clipped to the
// drawable area
func (t *Terminal) cellSpan(q tilt.Quad) (c0, r0, c1, r1 int) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range q {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	cw, ch := t.cfg.Terminal.CellWidth, t.cfg.Terminal.CellHeight
	c0 = max(0, int(math.Floor(minX/cw)))
	r0 = max(0, int(math.Floor(minY/ch)))
	c1 = min(t.cols-1, int(math.Ceil(maxX/cw)))
	r1 = min(t.rows-2, int(math.Ceil(maxY/ch)))
	return c0, r0, c1, r1
}

func (t *Terminal) drawStatus() {
	if t.rows == 0 {
		return
	}
	row := t.rows - 1
	line := []rune(t.StatusLine())
	for col := 0; col < t.cols; col++ {
		r := ' '
		if col < len(line) {
			r = line[col]
		}
		t.screen.SetContent(col, row, r, nil, StatusStyle)
	}
}

// StatusLine reports the touch position, the selection count and the keys
func (t *Terminal) StatusLine() string {
	pos := "none"
	if p, ok := t.tracker.Position(); ok {
		pos = fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)
	}
	return fmt.Sprintf("touch: %s  selected: %d  c: clear  q: quit",
		pos, len(t.gallery.Selected()))
}

// Close releases the tile subscriptions
func (t *Terminal) Close() {
	t.gallery.Close()
}

// Shaded blends the overlay over base by the overlay's alpha
func Shaded(base colorful.Color, s lighting.Shade) colorful.Color {
	if s.IsTransparent() {
		return base
	}
	over := colorful.Color{
		R: float64(s.R) / 255,
		G: float64(s.G) / 255,
		B: float64(s.B) / 255,
	}
	return base.BlendRgb(over, s.A).Clamped()
}

// labelColor picks black or white text, whichever reads better on bg
func labelColor(bg colorful.Color) tcell.Color {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
