package canvas

// Event is an input event decoded by a host. Coordinates are screen pixels.
type Event interface {
	isEvent()
}

// PointerDown is a primary button press. Modifier is true when the pan
// modifier was held.
type PointerDown struct {
	X, Y     float64
	Modifier bool
}

// PointerMove is pointer motion.
type PointerMove struct {
	X, Y float64
}

// PointerUp is a button release.
type PointerUp struct {
	X, Y float64
}

// Wheel is a scroll step; positive DeltaY scrolls down.
type Wheel struct {
	X, Y   float64
	DeltaY float64
}

// DoubleClick is a second primary press in quick succession.
type DoubleClick struct {
	X, Y float64
}

// Resize reports the new surface size in pixels.
type Resize struct {
	Width, Height int
}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Wheel) isEvent()       {}
func (DoubleClick) isEvent() {}
func (Resize) isEvent()      {}
