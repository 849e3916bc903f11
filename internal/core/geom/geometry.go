package geom

import "math"

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Dot returns the dot product a · b
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Inverse returns the vector pointing the opposite way
func (a Vec3) Inverse() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Len returns the magnitude of the vector
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// Unit returns the vector scaled to magnitude 1.
// The zero vector has no direction and is returned unchanged.
func (a Vec3) Unit() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

// RotateX rotates the vector about the X axis by theta radians
// (right-handed: y' = y·cosθ − z·sinθ, z' = y·sinθ + z·cosθ).
func (a Vec3) RotateX(theta float64) Vec3 {
	sin, cos := math.Sincos(theta)
	return Vec3{
		X: a.X,
		Y: a.Y*cos - a.Z*sin,
		Z: a.Y*sin + a.Z*cos,
	}
}

// RotateY rotates the vector about the Y axis by theta radians
// (right-handed: x' = x·cosθ + z·sinθ, z' = −x·sinθ + z·cosθ).
func (a Vec3) RotateY(theta float64) Vec3 {
	sin, cos := math.Sincos(theta)
	return Vec3{
		X: a.X*cos + a.Z*sin,
		Y: a.Y,
		Z: -a.X*sin + a.Z*cos,
	}
}

// PointInPolygon tests if a point is inside a polygon using ray casting algorithm
func PointInPolygon(point Point, polygon []Point) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}
