package touch

import "chosenoffset.com/tiltcards/internal/core/geom"

// DefaultTapSlop is how far, in screen units, a pointer may travel between
// down and up and still count as a tap.
const DefaultTapSlop = 10.0

type press struct {
	start     geom.Point
	cancelled bool
}

// TapDetector recognises taps in a stream of pointer events. Each pointer is
// tracked independently.
type TapDetector struct {
	Slop float64

	presses map[int]*press
}

// NewTapDetector creates a detector with the given slop. A non-positive slop
// falls back to DefaultTapSlop.
func NewTapDetector(slop float64) *TapDetector {
	if slop <= 0 {
		slop = DefaultTapSlop
	}
	return &TapDetector{
		Slop:    slop,
		presses: make(map[int]*press),
	}
}

// Handle feeds one event to the detector. When the event completes a tap it
// returns the position the pointer went down at and true.
func (d *TapDetector) Handle(ev Event) (geom.Point, bool) {
	switch ev.Phase {
	case PhaseDown:
		d.presses[ev.Pointer] = &press{start: ev.Page}

	case PhaseMove:
		if p, ok := d.presses[ev.Pointer]; ok && geom.Distance(p.start, ev.Page) > d.Slop {
			p.cancelled = true
		}

	case PhaseUp:
		p, ok := d.presses[ev.Pointer]
		if !ok {
			return geom.Point{}, false
		}
		delete(d.presses, ev.Pointer)
		if p.cancelled || geom.Distance(p.start, ev.Page) > d.Slop {
			return geom.Point{}, false
		}
		return p.start, true
	}
	return geom.Point{}, false
}

// Reset forgets every pointer in flight
func (d *TapDetector) Reset() {
	clear(d.presses)
}
