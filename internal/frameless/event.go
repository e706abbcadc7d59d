package frameless

import (
	"time"

	"github.com/1broseidon/frameless/internal/geom"
)

// EventKind identifies a pointer notification.
type EventKind int

const (
	PointerMove EventKind = iota
	PointerPress
	PointerRelease
	// PointerLeave is sent when the pointer leaves the window.
	PointerLeave
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
)

// ButtonMask is the set of buttons held down when an event was generated.
type ButtonMask uint8

const (
	MaskPrimary ButtonMask = 1 << iota
	MaskMiddle
	MaskSecondary
)

// Has reports whether b is held in m.
func (m ButtonMask) Has(b Button) bool {
	switch b {
	case ButtonPrimary:
		return m&MaskPrimary != 0
	case ButtonMiddle:
		return m&MaskMiddle != 0
	case ButtonSecondary:
		return m&MaskSecondary != 0
	default:
		return false
	}
}

// PointerEvent is a pointer notification delivered by the host.
//
// Button is the button that changed state for press and release. Buttons is
// the held mask as reported by the window system; for a press it does not yet
// include Button.
type PointerEvent struct {
	Kind    EventKind
	Button  Button
	Buttons ButtonMask
	// Local is relative to the window origin, Global to the screen.
	Local  geom.Point
	Global geom.Point
	// Time is the window-system timestamp.
	Time time.Duration
}
