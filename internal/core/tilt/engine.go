// Package tilt converts a touch position into the orientation of a photo tile:
// two bounded rotation angles and the overlay shade the tilted face receives
// from the gallery light.
//
// Everything here is a pure function of its inputs. Callers recompute whenever
// the tile centre, the touch position or the selection flag changes.
package tilt

import (
	"math"

	"chosenoffset.com/tiltcards/internal/core/geom"
	"chosenoffset.com/tiltcards/internal/render/lighting"
)

const (
	// MaxRotation bounds the tilt on each axis
	MaxRotation = math.Pi / 6

	// Sensitivity is the touch offset, in screen units, that produces half of
	// MaxRotation.
	Sensitivity = 150.0
)

// Orientation is the visual state of one tile
type Orientation struct {
	RotateX float64 // radians, about the horizontal screen axis
	RotateY float64 // radians, about the vertical screen axis
	Shade   lighting.Shade
}

// Neutral is the untilted, unlit orientation
var Neutral = Orientation{Shade: lighting.Transparent}

// IsNeutral reports whether the orientation leaves the tile flat and unlit
func (o Orientation) IsNeutral() bool {
	return o.RotateX == 0 && o.RotateY == 0 && o.Shade.IsTransparent()
}

// Normal returns the tile's surface normal after rotating (0,0,1) about X,
// then about Y.
func (o Orientation) Normal() geom.Vec3 {
	return geom.Normal.RotateX(o.RotateX).RotateY(o.RotateY)
}

// Angle maps an unbounded screen offset smoothly into the open interval
// (-maxRotation, maxRotation).
func Angle(delta, sensitivity, maxRotation float64) float64 {
	return (2 * math.Atan(delta/sensitivity) / math.Pi) * maxRotation
}

// Engine holds the tuning shared by every tile on a screen
type Engine struct {
	MaxRotation float64
	Sensitivity float64
	Rig         lighting.Rig
}

// NewEngine creates an engine with the default tuning and the gallery light
func NewEngine() *Engine {
	return &Engine{
		MaxRotation: MaxRotation,
		Sensitivity: Sensitivity,
		Rig:         lighting.DefaultRig(),
	}
}

// Orient computes a tile's orientation. center is nil until the tile has been
// measured and touch is nil until the first touch; in either case, or when the
// tile is not selected, the orientation is Neutral.
func (e *Engine) Orient(selected bool, center, touch *geom.Point) Orientation {
	if !selected || center == nil || touch == nil {
		return Neutral
	}

	o := Orientation{
		RotateX: e.RotateX(*center, *touch),
		RotateY: e.RotateY(*center, *touch),
	}
	_, o.Shade = e.Rig.Illuminate(o.Normal())
	return o
}

// RotateX is the vertical tilt: touching below the centre gives a positive angle.
func (e *Engine) RotateX(center, touch geom.Point) float64 {
	return Angle(touch.Y-center.Y, e.Sensitivity, e.MaxRotation)
}

// RotateY is the horizontal tilt. The offset is center minus touch, the
// opposite order to RotateX.
func (e *Engine) RotateY(center, touch geom.Point) float64 {
	return Angle(center.X-touch.X, e.Sensitivity, e.MaxRotation)
}

// Intensity returns the diffuse intensity an orientation receives
func (e *Engine) Intensity(o Orientation) float64 {
	return e.Rig.Light.Diffuse(o.Normal())
}
