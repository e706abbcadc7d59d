package frameless

import (
	"time"

	"github.com/1broseidon/frameless/internal/geom"
)

// fakeHost is an in-memory Host that applies every request synchronously.
type fakeHost struct {
	realized  bool
	frame     geom.Rect
	screen    geom.Rect
	bounds    geom.SizeBounds
	maximized bool
	minimized bool
	closed    bool
	title     string
	cursor    CursorShape
	updates   int
	setCalls  int
	moveCalls int

	gestures []RegionKind

	restoreErr error
}

func newFakeHost(frame geom.Rect) *fakeHost {
	return &fakeHost{
		realized: true,
		frame:    frame,
		screen:   geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
	}
}

func (h *fakeHost) Realized() bool          { return h.realized }
func (h *fakeHost) Geometry() geom.Rect     { return h.frame }
func (h *fakeHost) IsMaximized() bool       { return h.maximized }
func (h *fakeHost) Update()                 { h.updates++ }
func (h *fakeHost) SetTitle(t string) error { h.title = t; return nil }

func (h *fakeHost) SetGeometry(r geom.Rect) error {
	h.setCalls++
	h.frame = r
	return nil
}

func (h *fakeHost) Move(p geom.Point) error {
	h.moveCalls++
	h.frame = h.frame.MoveTo(p)
	return nil
}

func (h *fakeHost) SetSizeBounds(b geom.SizeBounds) error {
	h.bounds = b
	return nil
}

func (h *fakeHost) Maximize() error {
	h.maximized = true
	h.frame = h.screen
	return nil
}

// Restore clears the state but, like some window managers, leaves the frame
// at the maximized size.
func (h *fakeHost) Restore() error {
	if h.restoreErr != nil {
		return h.restoreErr
	}
	h.maximized = false
	return nil
}

func (h *fakeHost) Minimize() error { h.minimized = true; return nil }
func (h *fakeHost) Close() error    { h.closed = true; return nil }

func (h *fakeHost) SetCursor(s CursorShape) error {
	h.cursor = s
	return nil
}

// gestureHost additionally accepts window-manager gestures.
type gestureHost struct {
	*fakeHost
}

func (h gestureHost) BeginSystemGesture(region RegionKind, global geom.Point, button Button) error {
	h.gestures = append(h.gestures, region)
	return nil
}

type fakeShadow struct {
	applied  []ShadowFrame
	released int
	hidden   int
}

func (s *fakeShadow) Hide() error {
	s.hidden++
	return nil
}

func (s *fakeShadow) Name() string { return "fake" }

func (s *fakeShadow) Apply(frame ShadowFrame) error {
	s.applied = append(s.applied, frame)
	return nil
}

func (s *fakeShadow) Release() error {
	s.released++
	return nil
}

type fakeWidget struct {
	bounds    geom.Rect
	destroyed bool
}

func (w *fakeWidget) SetBounds(r geom.Rect) { w.bounds = r }
func (w *fakeWidget) Destroy()              { w.destroyed = true }

// pointer builds events for a window whose origin is at origin.
type pointer struct {
	origin geom.Point
	now    time.Duration
}

func (p *pointer) at(kind EventKind, local geom.Point, held ButtonMask) PointerEvent {
	p.now += 10 * time.Millisecond
	ev := PointerEvent{
		Kind:    kind,
		Buttons: held,
		Local:   local,
		Global:  local.Add(p.origin),
		Time:    p.now,
	}
	if kind == PointerPress || kind == PointerRelease {
		ev.Button = ButtonPrimary
	}
	return ev
}

func (p *pointer) press(local geom.Point) PointerEvent {
	return p.at(PointerPress, local, 0)
}

func (p *pointer) drag(local geom.Point) PointerEvent {
	return p.at(PointerMove, local, MaskPrimary)
}

func (p *pointer) hover(local geom.Point) PointerEvent {
	return p.at(PointerMove, local, 0)
}

func (p *pointer) release(local geom.Point) PointerEvent {
	return p.at(PointerRelease, local, MaskPrimary)
}

// dragGlobal builds a held-button move at a screen position for a window that
// may have moved since the gesture began.
func dragGlobal(global geom.Point, frame geom.Rect) PointerEvent {
	return PointerEvent{
		Kind:    PointerMove,
		Buttons: MaskPrimary,
		Local:   global.Sub(frame.Origin()),
		Global:  global,
	}
}
