package viewport

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Event is any input the controller understands.
type Event interface {
	isEvent()
}

// PointerDown is a button press on the view surface.
type PointerDown struct {
	PointerID int
	Button    Button
	X, Y      float64
}

// PointerMove reports the pointer position.
type PointerMove struct {
	PointerID int
	X, Y      float64
}

// PointerUp is a button release.
type PointerUp struct {
	PointerID int
}

// PointerLeave reports that the pointer left the view surface.
type PointerLeave struct {
	PointerID int
}

// Wheel is a scroll event. Negative DeltaY scrolls up and zooms in.
type Wheel struct {
	DeltaY float64
	Ctrl   bool
	Meta   bool
}

// Key is a key press. Key holds the produced character, e.g. "+" or "0".
// Editable is set when focus is in a text-editable element.
type Key struct {
	Key      string
	Ctrl     bool
	Meta     bool
	Editable bool
}

func (PointerDown) isEvent()  {}
func (PointerMove) isEvent()  {}
func (PointerUp) isEvent()    {}
func (PointerLeave) isEvent() {}
func (Wheel) isEvent()        {}
func (Key) isEvent()          {}

// Capturer routes subsequent pointer events to the view while a pan is in
// progress, even when the pointer leaves it.
type Capturer interface {
	Capture(pointerID int)
	Release(pointerID int)
}
