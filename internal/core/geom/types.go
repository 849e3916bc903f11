// Package geom holds the small amount of 2D and 3D geometry the tilt effect
// needs: screen points and rectangles, and direction vectors used for lighting.
package geom

// Point represents a 2D point in screen space
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned on-screen bounding box
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside or on the edge of the rectangle
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Inset shrinks the rectangle by d on every side
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Vec3 is a direction in space
type Vec3 struct {
	X, Y, Z float64
}

// Normal is the unrotated surface normal of a flat tile facing the viewer
var Normal = Vec3{0, 0, 1}
