package term

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/tiltcards/internal/assets"
	"chosenoffset.com/tiltcards/internal/config"
	"chosenoffset.com/tiltcards/internal/core/geom"
	"chosenoffset.com/tiltcards/internal/core/tilt"
	"chosenoffset.com/tiltcards/internal/gallery"
	"chosenoffset.com/tiltcards/internal/placeholders"
	"chosenoffset.com/tiltcards/internal/render/lighting"
)

type fakeSound struct {
	clicks []bool
}

func (s *fakeSound) Click(selected bool) { s.clicks = append(s.clicks, selected) }

func photos(names ...string) []assets.Photo {
	out := make([]assets.Photo, len(names))
	for i, n := range names {
		img := placeholders.CreatePortrait(n, 16)
		out[i] = assets.Photo{Name: n, Image: img, Swatch: assets.AverageColor(img), Placeholder: true}
	}
	return out
}

func newTerminal(t *testing.T, names ...string) (*Terminal, tcell.SimulationScreen, *fakeSound) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	sound := &fakeSound{}
	term := New(screen, config.DefaultConfig(), photos(names...), sound, nil)
	t.Cleanup(term.Close)
	return term, screen, sound
}

func click(term *Terminal, col, row int) {
	term.HandleEvent(tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(col, row, tcell.ButtonNone, tcell.ModNone))
}

func background(screen tcell.SimulationScreen, col, row int) tcell.Color {
	_, _, style, _ := screen.GetContent(col, row)
	_, bg, _ := style.Decompose()
	return bg
}

func rowText(screen tcell.SimulationScreen, row int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for col := 0; col < w; col++ {
		r, _, _, _ := screen.GetContent(col, row)
		sb.WriteRune(r)
	}
	return sb.String()
}

// cellAt returns the cell containing screen point p
func cellAt(term *Terminal, p geom.Point) (int, int) {
	return int(math.Floor(p.X / term.cfg.Terminal.CellWidth)),
		int(math.Floor(p.Y / term.cfg.Terminal.CellHeight))
}

func centerCell(t *testing.T, term *Terminal, tile *gallery.Tile) (int, int) {
	t.Helper()
	c, ok := tile.Center()
	require.True(t, ok, "tile %s is not laid out", tile.Name)
	return cellAt(term, c)
}

// borderCell returns a cell on the tile's centre row that falls inside the
// left selection border
func borderCell(t *testing.T, term *Terminal, tile *gallery.Tile) (int, int) {
	t.Helper()
	b := tile.Bounds()
	inner := b.Inset(term.cfg.Layout.Border)
	_, row := centerCell(t, term, tile)
	for col := 0; col < term.cols; col++ {
		if p := term.PagePoint(col, row); p.X > b.X && p.X < inner.X {
			return col, row
		}
	}
	t.Fatalf("no cell inside the left border of %v", b)
	return 0, 0
}

func TestPagePoint(t *testing.T) {
	term, _, _ := newTerminal(t, "april")
	assert.Equal(t, geom.Point{X: 5, Y: 10}, term.PagePoint(0, 0))
	assert.Equal(t, geom.Point{X: 145, Y: 90}, term.PagePoint(14, 4))
}

// With 10x20 cells an 80-column terminal is 800 units wide, room for four
// 170-unit tiles per row. Each row is centred.
func TestLayoutFollowsTerminalSize(t *testing.T) {
	term, screen, _ := newTerminal(t, "april", "jean_ralphio", "jerry", "leslie", "tom")
	tiles := term.Gallery().Tiles()

	assert.Equal(t, geom.Rect{X: 70, Y: 10, W: 150, H: 150}, tiles[0].Bounds())
	assert.Equal(t, 10.0, tiles[3].Bounds().Y)
	assert.Equal(t, geom.Rect{X: 325, Y: 180, W: 150, H: 150}, tiles[4].Bounds())

	screen.SetSize(40, 24)
	term.HandleEvent(tcell.NewEventResize(40, 24))
	assert.Equal(t, 180.0, tiles[2].Bounds().Y)
}

func TestSingleTileIsCentred(t *testing.T) {
	term, _, _ := newTerminal(t, "april")
	assert.Equal(t, geom.Rect{X: 325, Y: 10, W: 150, H: 150}, term.Gallery().Tiles()[0].Bounds())
}

func TestClickTogglesTileAndPlaysSound(t *testing.T) {
	term, _, sound := newTerminal(t, "april", "jerry")
	first, second := term.Gallery().Tiles()[0], term.Gallery().Tiles()[1]
	col, row := centerCell(t, term, first)

	click(term, col, row)
	assert.True(t, first.Selected())
	assert.False(t, second.Selected())
	assert.True(t, second.Orientation().IsNeutral())

	click(term, col, row)
	assert.False(t, first.Selected())
	assert.Equal(t, []bool{true, false}, sound.clicks)
}

func TestClickOutsideTilesDoesNothing(t *testing.T) {
	term, _, sound := newTerminal(t, "april")
	click(term, 0, 20)
	assert.Empty(t, term.Gallery().Selected())
	assert.Empty(t, sound.clicks)

	p, ok := term.Touch().Position()
	require.True(t, ok)
	assert.Equal(t, term.PagePoint(0, 20), p)
}

func TestHoverDoesNotMoveTouch(t *testing.T) {
	term, _, _ := newTerminal(t, "april")
	term.HandleEvent(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))
	_, ok := term.Touch().Position()
	assert.False(t, ok)
}

func TestDragTiltsSelectedTile(t *testing.T) {
	term, _, sound := newTerminal(t, "april", "jerry")
	first, second := term.Gallery().Tiles()[0], term.Gallery().Tiles()[1]
	col, row := centerCell(t, term, first)
	click(term, col, row)

	term.HandleEvent(tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(col, 12, tcell.Button1, tcell.ModNone))

	c, _ := first.Center()
	p := term.PagePoint(col, 12)
	o := first.Orientation()
	assert.Equal(t, tilt.Angle(p.Y-c.Y, tilt.Sensitivity, tilt.MaxRotation), o.RotateX)
	assert.Equal(t, tilt.Angle(c.X-p.X, tilt.Sensitivity, tilt.MaxRotation), o.RotateY)
	assert.Greater(t, o.RotateX, 0.0)
	assert.True(t, second.Orientation().IsNeutral())

	// Released far from the press, so not a tap.
	term.HandleEvent(tcell.NewEventMouse(col, 12, tcell.ButtonNone, tcell.ModNone))
	assert.True(t, first.Selected())
	assert.Len(t, sound.clicks, 1)
}

func TestKeys(t *testing.T) {
	term, _, _ := newTerminal(t, "april")
	col, row := centerCell(t, term, term.Gallery().Tiles()[0])
	click(term, col, row)
	require.Len(t, term.Gallery().Selected(), 1)

	assert.True(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone)))
	assert.Empty(t, term.Gallery().Selected())

	assert.False(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
}

func TestDrawUnselectedTileShowsSwatch(t *testing.T) {
	term, screen, _ := newTerminal(t, "april", "jerry")
	tile := term.Gallery().Tiles()[0]
	term.Draw()

	sw := tile.Swatch
	want := tcell.NewRGBColor(int32(sw.R), int32(sw.G), int32(sw.B))
	col, _ := centerCell(t, term, tile)
	assert.Equal(t, want, background(screen, col, 2))
	bcol, brow := borderCell(t, term, tile)
	assert.Equal(t, want, background(screen, bcol, brow))
	assert.Equal(t, tcell.NewRGBColor(0, 0, 0), background(screen, 2, 2))
}

func TestDrawSelectedTileHasBorder(t *testing.T) {
	term, screen, _ := newTerminal(t, "april", "jerry")
	tile := term.Gallery().Tiles()[0]
	col, row := centerCell(t, term, tile)
	click(term, col, row)
	term.Draw()

	bcol, brow := borderCell(t, term, tile)
	assert.Equal(t, tcell.NewRGBColor(0, 128, 0), background(screen, bcol, brow))
}

func TestDrawSelectedTileIsShaded(t *testing.T) {
	term, screen, _ := newTerminal(t, "april", "jerry")
	tile := term.Gallery().Tiles()[0]
	col, row := centerCell(t, term, tile)
	click(term, col, row)

	// Drag to the right edge: the tile turns toward the light.
	term.HandleEvent(tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone))
	term.HandleEvent(tcell.NewEventMouse(79, row, tcell.Button1, tcell.ModNone))
	term.Draw()

	o := tile.Orientation()
	require.Less(t, o.RotateY, 0.0)
	require.Equal(t, uint8(255), o.Shade.R)
	require.Greater(t, o.Shade.A, 0.1)

	sw := tile.Swatch
	base := colorful.Color{R: float64(sw.R) / 255, G: float64(sw.G) / 255, B: float64(sw.B) / 255}
	assert.Equal(t, toTcell(Shaded(base, o.Shade)), background(screen, col, 2))
	assert.NotEqual(t, toTcell(base), background(screen, col, 2))
}

func TestDrawLabelAndStatus(t *testing.T) {
	term, screen, _ := newTerminal(t, "april")
	col, row := centerCell(t, term, term.Gallery().Tiles()[0])
	term.Draw()

	assert.Contains(t, rowText(screen, row), "april")
	assert.True(t, strings.HasPrefix(rowText(screen, 23), "touch: none  selected: 0"))

	click(term, col, row)
	term.Draw()
	p := term.PagePoint(col, row)
	want := fmt.Sprintf("touch: (%.0f, %.0f)  selected: 1", p.X, p.Y)
	assert.True(t, strings.HasPrefix(rowText(screen, 23), want), rowText(screen, 23))
}

func TestShaded(t *testing.T) {
	base := colorful.Color{R: 0.2, G: 0.4, B: 0.6}
	assert.Equal(t, base, Shaded(base, lighting.Transparent))

	white := Shaded(base, lighting.Shade{R: 255, G: 255, B: 255, A: 0.5})
	assert.InDelta(t, 0.6, white.R, 1e-9)
	assert.InDelta(t, 0.8, white.B, 1e-9)

	black := Shaded(base, lighting.Shade{A: 0.5})
	assert.InDelta(t, 0.1, black.R, 1e-9)
}

func TestRunQuitsOnKey(t *testing.T) {
	term, screen, _ := newTerminal(t, "april")
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	term, _, _ := newTerminal(t, "april")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, term.Run(ctx), context.Canceled)
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	term, screen, _ := newTerminal(t, "april")
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	// Nobody reads events, so only done can release the poller.
	events := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		term.pollEvents(events, done)
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents blocked after done was closed")
	}
}
