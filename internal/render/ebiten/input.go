package ebiten

import (
	"image"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/tiltcards/internal/render"
)

// EbitenInputManager implements the InputManager interface using Ebiten.
// It turns ebiten's polled mouse and touch state into pointer events.
type EbitenInputManager struct {
	mouseDown bool
	lastMouse image.Point

	touchIDs []ebiten.TouchID
	touches  map[ebiten.TouchID]image.Point
	released []ebiten.TouchID
}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{
		touches: make(map[ebiten.TouchID]image.Point),
	}
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	return inpututil.IsKeyJustPressed(keyToEbitenKey(key))
}

// AppendPointerEvents appends the mouse and touch events of this tick.
func (m *EbitenInputManager) AppendPointerEvents(events []render.PointerEvent) []render.PointerEvent {
	m.touchIDs = ebiten.AppendTouchIDs(m.touchIDs[:0])

	x, y := ebiten.CursorPosition()
	mouse := mouseSample{
		pos:      image.Pt(x, y),
		pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	return m.appendEvents(events, mouse, m.touchIDs, touchPosition)
}

// mouseSample is the left-button state polled for one tick
type mouseSample struct {
	pos      image.Point
	pressed  bool
	released bool
}

// appendEvents converts one tick of polled state into pointer events. While
// any touch is down the mouse is ignored, so a browser's emulated mouse
// gesture does not repeat the touch.
func (m *EbitenInputManager) appendEvents(events []render.PointerEvent, mouse mouseSample, touchIDs []ebiten.TouchID, touchPos func(ebiten.TouchID) image.Point) []render.PointerEvent {
	if len(touchIDs) > 0 || len(m.touches) > 0 {
		m.mouseDown = false
		m.lastMouse = mouse.pos
	} else {
		events = m.appendMouseEvents(events, mouse)
	}
	return m.appendTouchEvents(events, touchIDs, touchPos)
}

func (m *EbitenInputManager) appendMouseEvents(events []render.PointerEvent, mouse mouseSample) []render.PointerEvent {
	pos := mouse.pos

	switch {
	case mouse.pressed:
		m.mouseDown = true
		events = append(events, pointerEvent(render.MousePointer, render.PointerDown, pos))
	case mouse.released:
		if m.mouseDown {
			events = append(events, pointerEvent(render.MousePointer, render.PointerUp, pos))
		}
		m.mouseDown = false
	case m.mouseDown && pos != m.lastMouse:
		events = append(events, pointerEvent(render.MousePointer, render.PointerMove, pos))
	}
	m.lastMouse = pos
	return events
}

func (m *EbitenInputManager) appendTouchEvents(events []render.PointerEvent, touchIDs []ebiten.TouchID, touchPos func(ebiten.TouchID) image.Point) []render.PointerEvent {
	slices.Sort(touchIDs)

	for _, id := range touchIDs {
		pos := touchPos(id)

		last, known := m.touches[id]
		switch {
		case !known:
			events = append(events, pointerEvent(touchPointer(id), render.PointerDown, pos))
		case pos != last:
			events = append(events, pointerEvent(touchPointer(id), render.PointerMove, pos))
		}
		m.touches[id] = pos
	}

	// Touches that vanished this tick end where they were last seen.
	m.released = m.released[:0]
	for id := range m.touches {
		if !slices.Contains(touchIDs, id) {
			m.released = append(m.released, id)
		}
	}
	slices.Sort(m.released)
	for _, id := range m.released {
		events = append(events, pointerEvent(touchPointer(id), render.PointerUp, m.touches[id]))
		delete(m.touches, id)
	}
	return events
}

func touchPosition(id ebiten.TouchID) image.Point {
	x, y := ebiten.TouchPosition(id)
	return image.Pt(x, y)
}

func touchPointer(id ebiten.TouchID) int {
	return render.MousePointer + 1 + int(id)
}

func pointerEvent(id int, phase render.PointerPhase, pos image.Point) render.PointerEvent {
	return render.PointerEvent{ID: id, Phase: phase, X: float64(pos.X), Y: float64(pos.Y)}
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) ebiten.Key {
	switch key {
	case render.KeyH:
		return ebiten.KeyH
	case render.KeyEscape:
		return ebiten.KeyEscape
	default:
		return 0
	}
}
