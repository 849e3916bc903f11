package gallery

import (
	"image/color"

	"chosenoffset.com/tiltcards/internal/core/geom"
	"chosenoffset.com/tiltcards/internal/core/tilt"
	"chosenoffset.com/tiltcards/internal/core/touch"
)

// Tile is one photo in the gallery. It owns its selection flag and measured
// bounds, reads the shared touch position, and keeps its orientation current
// whenever any of those inputs change.
type Tile struct {
	Name   string
	Swatch color.RGBA // dominant colour, for backends that cannot draw the photo

	engine *tilt.Engine
	touch  touch.Reader
	cancel func()

	selected bool
	bounds   geom.Rect
	center   *geom.Point

	orientation tilt.Orientation
}

// NewTile creates an unselected, unmeasured tile and subscribes it to the
// shared touch position.
func NewTile(name string, swatch color.RGBA, engine *tilt.Engine, reader touch.Reader) *Tile {
	t := &Tile{
		Name:        name,
		Swatch:      swatch,
		engine:      engine,
		touch:       reader,
		orientation: tilt.Neutral,
	}
	t.cancel = reader.Subscribe(func(geom.Point) { t.recompute() })
	return t
}

// Measure is the layout callback: it records the tile's on-screen bounding box
// and derives its centre.
func (t *Tile) Measure(r geom.Rect) {
	t.bounds = r
	c := r.Center()
	t.center = &c
	t.recompute()
}

// Toggle flips this tile's selection flag only
func (t *Tile) Toggle() {
	t.SetSelected(!t.selected)
}

// SetSelected sets the selection flag
func (t *Tile) SetSelected(selected bool) {
	if t.selected == selected {
		return
	}
	t.selected = selected
	t.recompute()
}

// Selected reports whether the tile is picked up
func (t *Tile) Selected() bool {
	return t.selected
}

// Bounds returns the last measured bounding box
func (t *Tile) Bounds() geom.Rect {
	return t.bounds
}

// Center returns the measured centre; ok is false until the first Measure
func (t *Tile) Center() (geom.Point, bool) {
	if t.center == nil {
		return geom.Point{}, false
	}
	return *t.center, true
}

// Measured reports whether the tile has been laid out
func (t *Tile) Measured() bool {
	return t.center != nil
}

// Orientation returns the tile's current angles and shade
func (t *Tile) Orientation() tilt.Orientation {
	return t.orientation
}

// Close stops following the touch position
func (t *Tile) Close() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Tile) recompute() {
	var touchPos *geom.Point
	if p, ok := t.touch.Position(); ok {
		touchPos = &p
	}
	t.orientation = t.engine.Orient(t.selected, t.center, touchPos)
}
