package app

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/tiltcards/internal/assets"
	"chosenoffset.com/tiltcards/internal/config"
	"chosenoffset.com/tiltcards/internal/placeholders"
	"chosenoffset.com/tiltcards/internal/render"
)

type drawCall struct {
	vertices []render.Vertex
	src      *fakeImage
}

type fakeImage struct {
	w, h     int
	fill     color.Color
	draws    []drawCall
	disposed bool
}

func (i *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, i.w, i.h) }
func (i *fakeImage) Size() (int, int)        { return i.w, i.h }
func (i *fakeImage) Fill(clr color.Color)    { i.fill = clr }
func (i *fakeImage) Clear()                  { i.fill = color.Transparent }
func (i *fakeImage) Dispose()                { i.disposed = true }
func (i *fakeImage) DrawTriangles(vertices []render.Vertex, _ []uint16, img render.Image, _ *render.DrawTrianglesOptions) {
	i.draws = append(i.draws, drawCall{vertices: vertices, src: img.(*fakeImage)})
}

type fakeRenderer struct {
	texts []string
	rects int
}

func (r *fakeRenderer) NewImage(w, h int) render.Image { return &fakeImage{w: w, h: h} }
func (r *fakeRenderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	return &fakeImage{w: b.Dx(), h: b.Dy()}
}
func (r *fakeRenderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {
	r.rects++
}
func (r *fakeRenderer) DrawText(_ render.Image, text string, _, _ int, _ color.Color, _ float64) {
	r.texts = append(r.texts, text)
}
func (r *fakeRenderer) MeasureText(text string, scale float64) (int, int) {
	return int(float64(len(text)*7) * scale), int(13 * scale)
}

type fakeInput struct {
	keys   map[render.Key]bool
	events []render.PointerEvent
}

func (in *fakeInput) IsKeyJustPressed(key render.Key) bool { return in.keys[key] }
func (in *fakeInput) AppendPointerEvents(events []render.PointerEvent) []render.PointerEvent {
	events = append(events, in.events...)
	in.events = nil
	return events
}

func (in *fakeInput) queue(events ...render.PointerEvent) {
	in.events = append(in.events, events...)
}

func photos(names ...string) []assets.Photo {
	out := make([]assets.Photo, len(names))
	for i, n := range names {
		img := placeholders.CreatePortrait(n, 16)
		out[i] = assets.Photo{Name: n, Image: img, Swatch: assets.AverageColor(img), Placeholder: true}
	}
	return out
}

func newScreen(t *testing.T, names ...string) (*Screen, *fakeRenderer, *fakeInput) {
	t.Helper()
	r := &fakeRenderer{}
	in := &fakeInput{keys: map[render.Key]bool{}}
	s := NewScreen(config.DefaultConfig(), r, in, photos(names...), nil)
	t.Cleanup(s.Close)

	w, h := s.Layout(540, 960)
	require.Equal(t, 540, w)
	require.Equal(t, 960, h)
	require.NoError(t, s.Update())
	return s, r, in
}

func tap(x, y float64) []render.PointerEvent {
	return []render.PointerEvent{
		{ID: render.MousePointer, Phase: render.PointerDown, X: x, Y: y},
		{ID: render.MousePointer, Phase: render.PointerUp, X: x, Y: y},
	}
}

func TestScreenLaysOutTiles(t *testing.T) {
	s, _, _ := newScreen(t, "april", "jean_ralphio", "jerry", "leslie", "tom")
	for _, tile := range s.Gallery().Tiles() {
		assert.True(t, tile.Measured(), tile.Name)
	}
}

func TestScreenTapSelectsTile(t *testing.T) {
	s, _, in := newScreen(t, "april", "jerry")
	first, second := s.Gallery().Tiles()[0], s.Gallery().Tiles()[1]
	c, _ := first.Center()

	in.queue(tap(c.X, c.Y)...)
	require.NoError(t, s.Update())

	assert.True(t, first.Selected())
	assert.False(t, second.Selected())
	p, ok := s.Touch().Position()
	require.True(t, ok)
	assert.Equal(t, c, p)
}

func TestScreenDragTiltsSelectedTile(t *testing.T) {
	s, _, in := newScreen(t, "april", "jerry")
	first, second := s.Gallery().Tiles()[0], s.Gallery().Tiles()[1]
	c, _ := first.Center()

	in.queue(tap(c.X, c.Y)...)
	require.NoError(t, s.Update())

	in.queue(
		render.PointerEvent{ID: 1, Phase: render.PointerDown, X: c.X, Y: c.Y},
		render.PointerEvent{ID: 1, Phase: render.PointerMove, X: c.X, Y: c.Y + 150},
	)
	require.NoError(t, s.Update())

	assert.InDelta(t, math.Pi/12, first.Orientation().RotateX, 1e-12)
	assert.True(t, second.Orientation().IsNeutral())

	// Releasing far from where the drag started is not a tap.
	in.queue(render.PointerEvent{ID: 1, Phase: render.PointerUp, X: c.X, Y: c.Y + 150})
	require.NoError(t, s.Update())
	assert.True(t, first.Selected())
}

func TestScreenEscapeClearsSelection(t *testing.T) {
	s, _, in := newScreen(t, "april")
	c, _ := s.Gallery().Tiles()[0].Center()
	in.queue(tap(c.X, c.Y)...)
	require.NoError(t, s.Update())
	require.Len(t, s.Gallery().Selected(), 1)

	in.keys[render.KeyEscape] = true
	require.NoError(t, s.Update())
	assert.Empty(t, s.Gallery().Selected())
}

func TestDrawUnselectedTiles(t *testing.T) {
	s, _, _ := newScreen(t, "april", "jerry")
	screen := &fakeImage{w: 540, h: 960}

	s.Draw(screen)

	assert.Equal(t, BackgroundColor, screen.fill)
	// Card background and photo per tile, no overlay.
	require.Len(t, screen.draws, 4)
	assert.Same(t, s.white, render.Image(screen.draws[0].src))
	assert.Same(t, s.faces[0], render.Image(screen.draws[1].src))

	b := s.Gallery().Tiles()[0].Bounds()
	v := screen.draws[1].vertices
	assert.InDelta(t, b.X, float64(v[0].DstX), 1e-3)
	assert.InDelta(t, b.Y, float64(v[0].DstY), 1e-3)
	assert.InDelta(t, b.X+b.W, float64(v[2].DstX), 1e-3)
}

func TestDrawSelectedTileLastWithOverlay(t *testing.T) {
	s, _, in := newScreen(t, "april", "jerry")
	first := s.Gallery().Tiles()[0]
	c, _ := first.Center()

	in.queue(tap(c.X, c.Y)...)
	in.queue(render.PointerEvent{ID: 2, Phase: render.PointerMove, X: c.X + 400, Y: c.Y})
	require.NoError(t, s.Update())
	require.False(t, first.Orientation().Shade.IsTransparent())

	screen := &fakeImage{w: 540, h: 960}
	s.Draw(screen)

	// jerry: card + photo; april: border + photo + overlay.
	require.Len(t, screen.draws, 5)
	assert.Same(t, s.faces[1], render.Image(screen.draws[1].src))
	assert.Same(t, s.faces[0], render.Image(screen.draws[3].src))

	overlay := screen.draws[4]
	r, g, b, a := first.Orientation().Shade.Premultiplied()
	assert.Equal(t, r, overlay.vertices[0].ColorR)
	assert.Equal(t, g, overlay.vertices[0].ColorG)
	assert.Equal(t, b, overlay.vertices[0].ColorB)
	assert.Equal(t, a, overlay.vertices[0].ColorA)

	border := screen.draws[2].vertices[0]
	assert.InDelta(t, 128.0/255, border.ColorG, 1e-6)
}

func TestHUDToggle(t *testing.T) {
	s, r, in := newScreen(t, "april")
	screen := &fakeImage{w: 540, h: 960}

	s.Draw(screen)
	assert.Empty(t, r.texts)

	in.keys[render.KeyH] = true
	require.NoError(t, s.Update())
	in.keys[render.KeyH] = false

	s.Draw(screen)
	require.NotEmpty(t, r.texts)
	assert.Equal(t, "touch: none", r.texts[0])
	assert.Equal(t, 1, r.rects)
}

func TestHUDLines(t *testing.T) {
	s, _, in := newScreen(t, "april")
	c, _ := s.Gallery().Tiles()[0].Center()
	in.queue(tap(c.X, c.Y)...)
	require.NoError(t, s.Update())

	lines := s.hudLines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "touch: ("))
	assert.True(t, strings.HasPrefix(lines[1], "april rx=+0.000 ry=+0.000"))
}

func TestCloseDisposesImages(t *testing.T) {
	r := &fakeRenderer{}
	s := NewScreen(config.DefaultConfig(), r, &fakeInput{}, photos("a"), nil)
	s.Close()

	assert.True(t, s.faces[0].(*fakeImage).disposed)
	assert.True(t, s.white.(*fakeImage).disposed)
	assert.Equal(t, 0, s.tracker.Subscribers())
}
