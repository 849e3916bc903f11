package app

import (
	"fmt"
	"image/color"

	"chosenoffset.com/tiltcards/internal/core/tilt"
	"chosenoffset.com/tiltcards/internal/gallery"
	"chosenoffset.com/tiltcards/internal/render"
)

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// Draw renders the gallery to the screen.
func (s *Screen) Draw(screen render.Image) {
	screen.Fill(BackgroundColor)

	// Unselected tiles first so picked-up tiles tilt over their neighbours.
	for i, t := range s.gallery.Tiles() {
		if !t.Selected() {
			s.drawTile(screen, t, s.faces[i])
		}
	}
	for i, t := range s.gallery.Tiles() {
		if t.Selected() {
			s.drawTile(screen, t, s.faces[i])
		}
	}

	if s.showHUD {
		s.drawHUD(screen)
	}
}

func (s *Screen) drawTile(screen render.Image, t *gallery.Tile, face render.Image) {
	if !t.Measured() {
		return
	}

	o := t.Orientation()
	bounds := t.Bounds()
	pivot := bounds.Center()
	perspective := s.cfg.Tilt.Perspective

	inner := bounds
	if t.Selected() {
		s.drawSolid(screen, tilt.Project(bounds, pivot, o, perspective), SelectedColor)
		inner = bounds.Inset(s.cfg.Layout.Border)
	} else {
		s.drawSolid(screen, tilt.Project(bounds, pivot, o, perspective), CardColor)
	}

	q := tilt.Project(inner, pivot, o, perspective)
	s.drawQuad(screen, q, face, 1, 1, 1, 1)

	if !o.Shade.IsTransparent() {
		r, g, b, a := o.Shade.Premultiplied()
		s.drawQuad(screen, q, s.white, r, g, b, a)
	}
}

func (s *Screen) drawSolid(dst render.Image, q tilt.Quad, clr color.RGBA) {
	a := float32(clr.A) / 255
	s.drawQuad(dst, q, s.white,
		float32(clr.R)/255*a, float32(clr.G)/255*a, float32(clr.B)/255*a, a)
}

// drawQuad maps the whole of src onto q, tinted by the premultiplied colour
func (s *Screen) drawQuad(dst render.Image, q tilt.Quad, src render.Image, r, g, b, a float32) {
	w, h := src.Size()
	srcCorners := [4][2]float32{
		{0, 0},
		{float32(w), 0},
		{float32(w), float32(h)},
		{0, float32(h)},
	}

	vertices := make([]render.Vertex, 4)
	for i, p := range q {
		vertices[i] = render.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   srcCorners[i][0],
			SrcY:   srcCorners[i][1],
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	dst.DrawTriangles(vertices, quadIndices, src, &render.DrawTrianglesOptions{AntiAlias: true})
}

// hudLines describes the touch position and every selected tile
func (s *Screen) hudLines() []string {
	lines := []string{"touch: none"}
	if p, ok := s.tracker.Position(); ok {
		lines[0] = fmt.Sprintf("touch: (%.0f, %.0f)", p.X, p.Y)
	}
	for _, t := range s.gallery.Selected() {
		o := t.Orientation()
		lines = append(lines, fmt.Sprintf("%s rx=%+.3f ry=%+.3f %s", t.Name, o.RotateX, o.RotateY, o.Shade))
	}
	return lines
}

func (s *Screen) drawHUD(screen render.Image) {
	const (
		pad   = 8
		scale = 1.0
	)

	lines := s.hudLines()
	_, lineHeight := s.renderer.MeasureText("M", scale)
	lineHeight += 2

	maxWidth := 0
	for _, l := range lines {
		w, _ := s.renderer.MeasureText(l, scale)
		maxWidth = max(maxWidth, w)
	}

	_, h := screen.Size()
	top := h - pad - len(lines)*lineHeight
	s.renderer.FillRect(screen, 0, float32(top-pad), float32(maxWidth+2*pad), float32(len(lines)*lineHeight+2*pad), HUDBackground)
	for i, l := range lines {
		s.renderer.DrawText(screen, l, pad, top+i*lineHeight, HUDColor, scale)
	}
}
