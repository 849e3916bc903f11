package tilt

import "chosenoffset.com/tiltcards/internal/core/geom"

// Quad holds projected corners in the order top-left, top-right,
// bottom-right, bottom-left.
type Quad [4]geom.Point

// minDepth keeps the perspective divide away from the eye plane
const minDepth = 1.0

// Project rotates the corners of r about pivot, X first then Y like the
// surface normal, and projects them back onto the screen. perspective is the
// eye distance in screen units; zero or less means orthographic.
func Project(r geom.Rect, pivot geom.Point, o Orientation, perspective float64) Quad {
	corners := [4]geom.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}

	var q Quad
	for i, c := range corners {
		v := geom.Vec3{X: c.X - pivot.X, Y: c.Y - pivot.Y}
		v = v.RotateX(o.RotateX).RotateY(o.RotateY)

		scale := 1.0
		if perspective > 0 {
			depth := perspective - v.Z
			if depth < minDepth {
				depth = minDepth
			}
			scale = perspective / depth
		}
		q[i] = geom.Point{X: pivot.X + v.X*scale, Y: pivot.Y + v.Y*scale}
	}
	return q
}

// Contains reports whether p falls inside the projected quad
func (q Quad) Contains(p geom.Point) bool {
	return geom.PointInPolygon(p, q[:])
}
