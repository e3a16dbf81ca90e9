// Package event defines the window events delivered to applications that
// implement app.EventHandler.
//
package event

// Interface is implemented by all events.
//
type Interface interface{}

// WindowClose is sent when the user asks to close the window. The window
// closes after the event has been handled.
//
type WindowClose struct{}

// FrameBufferSize is sent when the framebuffer is resized. The viewport has
// already been updated.
//
type FrameBufferSize struct {
	Width, Height int
}

// Key identifies a keyboard key.
//
type Key int

// Keys reported by the driver. Others are reported as KeyUnknown.
//
const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPlus
	KeyMinus
)

var keyNames = [...]string{
	KeyUnknown: "unknown",
	KeyEscape:  "escape",
	KeySpace:   "space",
	KeyEnter:   "enter",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyPlus:    "plus",
	KeyMinus:   "minus",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

// KeyDown is sent when a key is pressed, and repeatedly while it is held.
//
type KeyDown struct {
	Key    Key
	Repeat bool
}

// KeyUp is sent when a key is released.
//
type KeyUp struct {
	Key Key
}
