package frameless

import (
	"errors"

	"github.com/1broseidon/frameless/internal/geom"
)

// ErrNotRealized is returned by hosts whose native window does not exist yet.
var ErrNotRealized = errors.New("native window not realized")

// Host is the window-system side of a frameless window.
//
// All methods are called from the UI goroutine.
type Host interface {
	// Realized reports whether the native window exists and is mapped.
	Realized() bool
	// Geometry returns the frame in screen coordinates.
	Geometry() geom.Rect
	SetGeometry(r geom.Rect) error
	Move(origin geom.Point) error
	SetSizeBounds(b geom.SizeBounds) error

	IsMaximized() bool
	Maximize() error
	Restore() error
	Minimize() error
	Close() error

	SetTitle(title string) error
	SetCursor(shape CursorShape) error
	// Update schedules a repaint of the chrome and content.
	Update()
}

// SystemGestureHost is implemented by hosts that can hand a move or resize
// gesture over to the window manager.
type SystemGestureHost interface {
	BeginSystemGesture(region RegionKind, global geom.Point, button Button) error
}

// Mover is the part of a window a TitleBar needs.
type Mover interface {
	Geometry() geom.Rect
	Move(origin geom.Point) error
	IsMaximized() bool
}

// Widget is content placed under the title bar.
type Widget interface {
	// SetBounds places the widget in window-local coordinates.
	SetBounds(r geom.Rect)
	// Destroy releases the widget when it is replaced.
	Destroy()
}
