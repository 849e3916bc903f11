package render

import (
	"image"
	"image/color"
)

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// gallery logic.
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image
	NewImageFromImage(src image.Image) Image

	// Vector operations (for drawing shapes)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// Drawing operations
	DrawTriangles(vertices []Vertex, indices []uint16, img Image, opts *DrawTrianglesOptions)

	// Resource management
	Dispose()
}

// DrawTrianglesOptions contains options for drawing triangles.
type DrawTrianglesOptions struct {
	AntiAlias bool
}

// Vertex represents a vertex for triangle rendering.
// Colour components are premultiplied by alpha.
type Vertex struct {
	DstX   float32
	DstY   float32
	SrcX   float32
	SrcY   float32
	ColorR float32
	ColorG float32
	ColorB float32
	ColorA float32
}

// InputManager handles input from the user (keyboard, mouse, touch).
type InputManager interface {
	IsKeyJustPressed(key Key) bool

	// AppendPointerEvents appends the pointer events that happened since the
	// previous call. Mouse and touch are both reported; the mouse only
	// produces events while its primary button is held.
	AppendPointerEvents(events []PointerEvent) []PointerEvent
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the gallery reacts to
const (
	KeyH      Key = iota // HUD toggle
	KeyEscape            // Put every tile down
)

// PointerPhase is the stage of a pointer gesture.
type PointerPhase int

// Pointer phase constants
const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
)

// MousePointer is the pointer ID of the mouse. Touches use IDs above it.
const MousePointer = 0

// PointerEvent is a pointer event in logical screen coordinates.
type PointerEvent struct {
	ID    int
	Phase PointerPhase
	X, Y  float64
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main screen struct.
type Game interface {
	// Update updates the screen state. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
