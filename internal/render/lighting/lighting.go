// Package lighting simulates a single directional light falling on a tile and
// turns the resulting diffuse intensity into an overlay tint.
package lighting

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"chosenoffset.com/tiltcards/internal/core/geom"
)

// DefaultMaxOpacity caps the overlay alpha at full intensity
const DefaultMaxOpacity = 0.5

// Directional is a light infinitely far away, shining along Direction.
// Direction is always unit length.
type Directional struct {
	Direction geom.Vec3
}

// NewDirectional creates a light shining along v. The vector is normalised so
// the diffuse term reads directly as a cosine.
func NewDirectional(v geom.Vec3) Directional {
	return Directional{Direction: v.Unit()}
}

// DefaultDirection returns the fixed angular offsets the gallery light is
// built from: a light shining toward the right and up the screen.
func DefaultDirection() geom.Vec3 {
	return geom.Vec3{X: math.Pi / 2.5, Y: -math.Pi / 5, Z: 0}
}

// Default is the gallery light, computed once at startup
var Default = NewDirectional(DefaultDirection())

// Diffuse returns the cosine between normal and the direction toward the
// light, in [-1, 1] for a unit normal.
func (d Directional) Diffuse(normal geom.Vec3) float64 {
	return normal.Dot(d.Direction.Inverse())
}

// Shade is an overlay colour with 8-bit channels and a fractional alpha
type Shade struct {
	R, G, B uint8
	A       float64 // 0.0 to 1.0
}

// Transparent applies no lighting effect
var Transparent = Shade{}

// IsTransparent reports whether the shade leaves the tile untouched
func (s Shade) IsTransparent() bool {
	return s.A <= 0
}

// RGBA implements color.Color with premultiplied 16-bit channels
func (s Shade) RGBA() (r, g, b, a uint32) {
	return s.NRGBA().RGBA()
}

// NRGBA converts the shade to a non-premultiplied 8-bit colour
func (s Shade) NRGBA() color.NRGBA {
	return color.NRGBA{R: s.R, G: s.G, B: s.B, A: uint8(math.Round(clamp01(s.A) * 255))}
}

// Premultiplied returns the shade as premultiplied float components, the form
// vertex colours expect.
func (s Shade) Premultiplied() (r, g, b, a float32) {
	alpha := clamp01(s.A)
	return float32(float64(s.R) / 255 * alpha),
		float32(float64(s.G) / 255 * alpha),
		float32(float64(s.B) / 255 * alpha),
		float32(alpha)
}

// String formats the shade as a CSS rgba() value
func (s Shade) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", s.R, s.G, s.B, strconv.FormatFloat(s.A, 'g', -1, 64))
}

// Rig pairs the light with how strongly it may tint a tile
type Rig struct {
	Light      Directional
	MaxOpacity float64
}

// NewRig creates a lighting rig
func NewRig(light Directional, maxOpacity float64) Rig {
	return Rig{Light: light, MaxOpacity: maxOpacity}
}

// DefaultRig returns the gallery light at the default opacity
func DefaultRig() Rig {
	return NewRig(Default, DefaultMaxOpacity)
}

// Shade maps a diffuse intensity to an overlay. Faces turned toward the light
// are brightened with white, faces turned away are darkened with black.
func (r Rig) Shade(intensity float64) Shade {
	if intensity > 0 {
		return Shade{R: 255, G: 255, B: 255, A: r.MaxOpacity * intensity}
	}
	return Shade{A: r.MaxOpacity * math.Abs(intensity)}
}

// Illuminate returns the diffuse intensity on normal and its overlay
func (r Rig) Illuminate(normal geom.Vec3) (float64, Shade) {
	intensity := r.Light.Diffuse(normal)
	return intensity, r.Shade(intensity)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
