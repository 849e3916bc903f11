// Package touch tracks the most recent pointer position on a screen and shares
// it with every tile on that screen.
package touch

import "chosenoffset.com/tiltcards/internal/core/geom"

// Phase is the stage of a pointer gesture
type Phase int

// Phase constants
const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

// String returns the lowercase phase name
func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	default:
		return "unknown"
	}
}

// Event is a pointer event carrying an absolute page coordinate
type Event struct {
	Pointer int
	Phase   Phase
	Page    geom.Point
}

// Reader is the read-only view of a Tracker handed to tiles
type Reader interface {
	// Position returns the last stored coordinate; ok is false before the
	// first touch.
	Position() (p geom.Point, ok bool)

	// Subscribe registers fn to run after every update. The returned
	// function cancels the subscription.
	Subscribe(fn func(geom.Point)) (cancel func())
}

type subscriber struct {
	id uint32
	fn func(geom.Point)
}

// Tracker holds the single most recent pointer coordinate for a screen.
// It has exactly one writer, the screen's input pump, and is not safe for
// concurrent use.
type Tracker struct {
	position geom.Point
	known    bool

	subscribers []subscriber
	nextID      uint32
}

var _ Reader = (*Tracker)(nil)

// NewTracker creates a tracker with no stored coordinate
func NewTracker() *Tracker {
	return &Tracker{}
}

// Handle stores the event's page coordinate and notifies subscribers.
// Down, move and up events all replace the position; coordinates are not
// validated.
func (t *Tracker) Handle(ev Event) {
	switch ev.Phase {
	case PhaseDown, PhaseMove, PhaseUp:
		t.Set(ev.Page)
	}
}

// Set replaces the stored coordinate and notifies subscribers in the order
// they subscribed.
func (t *Tracker) Set(p geom.Point) {
	t.position = p
	t.known = true

	subs := make([]subscriber, len(t.subscribers))
	copy(subs, t.subscribers)
	for _, s := range subs {
		s.fn(p)
	}
}

// Position implements Reader
func (t *Tracker) Position() (geom.Point, bool) {
	return t.position, t.known
}

// Subscribe implements Reader
func (t *Tracker) Subscribe(fn func(geom.Point)) func() {
	t.nextID++
	id := t.nextID
	t.subscribers = append(t.subscribers, subscriber{id: id, fn: fn})
	return func() { t.unsubscribe(id) }
}

func (t *Tracker) unsubscribe(id uint32) {
	for i := range t.subscribers {
		if t.subscribers[i].id == id {
			copy(t.subscribers[i:], t.subscribers[i+1:])
			t.subscribers[len(t.subscribers)-1] = subscriber{}
			t.subscribers = t.subscribers[:len(t.subscribers)-1]
			return
		}
	}
}

// Subscribers returns the number of active subscriptions
func (t *Tracker) Subscribers() int {
	return len(t.subscribers)
}
