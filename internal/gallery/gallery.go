// Package gallery lays out photo tiles in wrapping rows and routes taps to the
// tile under the pointer.
package gallery

import (
	"image/color"
	"math"

	"chosenoffset.com/tiltcards/internal/core/geom"
	"chosenoffset.com/tiltcards/internal/core/tilt"
	"chosenoffset.com/tiltcards/internal/core/touch"
)

// Layout describes the box model of every tile
type Layout struct {
	TileSize float64 // width and height of a tile
	Margin   float64 // space around each tile
	SafeTop  float64 // inset above the first row
}

// DefaultLayout returns 150-unit tiles with a 10-unit margin
func DefaultLayout() Layout {
	return Layout{TileSize: 150, Margin: 10}
}

// Entry names a tile and its dominant colour
type Entry struct {
	Name   string
	Swatch color.RGBA
}

// Gallery is the ordered set of tiles on one screen
type Gallery struct {
	layout Layout
	tiles  []*Tile

	width, height float64
}

// New creates a gallery with one tile per entry. Every tile reads the same
// touch position.
func New(engine *tilt.Engine, reader touch.Reader, layout Layout, entries []Entry) *Gallery {
	g := &Gallery{
		layout: layout,
		tiles:  make([]*Tile, 0, len(entries)),
	}
	for _, e := range entries {
		g.tiles = append(g.tiles, NewTile(e.Name, e.Swatch, engine, reader))
	}
	return g
}

// Tiles returns the tiles in display order
func (g *Gallery) Tiles() []*Tile {
	return g.tiles
}

// Layout arranges the tiles in centred rows that wrap at the screen width and
// measures each one. Calling it again with the same size is a no-op.
func (g *Gallery) Layout(width, height float64) {
	if width == g.width && height == g.height && g.measured() {
		return
	}
	g.width, g.height = width, height

	outer := g.layout.TileSize + 2*g.layout.Margin
	perRow := 1
	if outer > 0 {
		perRow = max(1, int(math.Floor(width/outer)))
	}

	for i, t := range g.tiles {
		row := i / perRow
		col := i % perRow

		inRow := min(perRow, len(g.tiles)-row*perRow)
		startX := (width - float64(inRow)*outer) / 2

		t.Measure(geom.Rect{
			X: startX + float64(col)*outer + g.layout.Margin,
			Y: g.layout.SafeTop + float64(row)*outer + g.layout.Margin,
			W: g.layout.TileSize,
			H: g.layout.TileSize,
		})
	}
}

func (g *Gallery) measured() bool {
	for _, t := range g.tiles {
		if !t.Measured() {
			return false
		}
	}
	return true
}

// TileAt returns the tile whose layout bounds contain p
func (g *Gallery) TileAt(p geom.Point) (*Tile, bool) {
	for _, t := range g.tiles {
		if t.Measured() && t.Bounds().Contains(p) {
			return t, true
		}
	}
	return nil, false
}

// Tap toggles the tile under p. Other tiles keep their selection.
func (g *Gallery) Tap(p geom.Point) (*Tile, bool) {
	t, ok := g.TileAt(p)
	if !ok {
		return nil, false
	}
	t.Toggle()
	return t, true
}

// Selected returns the picked-up tiles in display order
func (g *Gallery) Selected() []*Tile {
	var out []*Tile
	for _, t := range g.tiles {
		if t.Selected() {
			out = append(out, t)
		}
	}
	return out
}

// ClearSelection puts every tile down
func (g *Gallery) ClearSelection() {
	for _, t := range g.tiles {
		t.SetSelected(false)
	}
}

// Close unsubscribes every tile from the touch position
func (g *Gallery) Close() {
	for _, t := range g.tiles {
		t.Close()
	}
}
