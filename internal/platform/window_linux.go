//go:build linux

package platform

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
	"github.com/1broseidon/frameless/internal/x11"
)

// Window is the X11 host of a frameless controller.
type Window struct {
	conn    *x11.Connection
	xwin    *xwindow.Window
	painter *Painter
	logger  *slog.Logger
	ctrl    *frameless.Controller

	geometry  geom.Rect
	realized  bool
	maximized bool
	// fallbackMax is set when maximize resized the window to the work area
	// itself because the window manager lacks _NET_WM_STATE support.
	fallbackMax bool
	closed      bool

	stateAtom xproto.Atom
	cursors   map[frameless.CursorShape]xproto.Cursor

	// OnClosed runs once after the native window is destroyed.
	OnClosed func()
}

var (
	_ frameless.Host              = (*Window)(nil)
	_ frameless.SystemGestureHost = (*Window)(nil)
)

// NewWindow creates the undecorated native window. It stays unmapped until
// Show.
func NewWindow(conn *x11.Connection, spec x11.WindowSpec, theme Theme, logger *slog.Logger) (*Window, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	spec.Background = theme.TitleBackground
	xwin, err := conn.CreateFramelessWindow(spec)
	if err != nil {
		return nil, err
	}

	painter, err := NewPainter(conn.XUtil.Conn(), xwin.Id, theme)
	if err != nil {
		xwin.Destroy()
		return nil, err
	}

	stateAtom, err := conn.Atom("_NET_WM_STATE")
	if err != nil {
		painter.Close()
		xwin.Destroy()
		return nil, err
	}

	return &Window{
		conn:      conn,
		xwin:      xwin,
		painter:   painter,
		logger:    logger,
		geometry:  geom.Rect{X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height},
		stateAtom: stateAtom,
		cursors:   make(map[frameless.CursorShape]xproto.Cursor),
	}, nil
}

// ID returns the native window id.
func (w *Window) ID() xproto.Window { return w.xwin.Id }

// Attach routes the window's X events into ctrl. It must be called once,
// before Show.
func (w *Window) Attach(ctrl *frameless.Controller) {
	w.ctrl = ctrl
	w.connectEvents()
}

// Show maps the window.
func (w *Window) Show() {
	w.xwin.Map()
}

// SetTheme changes the chrome colours and repaints.
func (w *Window) SetTheme(theme Theme) error {
	if err := w.painter.SetTheme(theme); err != nil {
		return err
	}
	w.xwin.Change(xproto.CwBackPixel, theme.TitleBackground)
	w.Update()
	return nil
}

func (w *Window) connectEvents() {
	xu := w.conn.XUtil
	id := w.xwin.Id

	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		w.pointer(pointerEvent(frameless.PointerPress, ev.Detail, ev.State, ev.EventX, ev.EventY, ev.RootX, ev.RootY, ev.Time))
	}).Connect(xu, id)

	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		w.pointer(pointerEvent(frameless.PointerRelease, ev.Detail, ev.State, ev.EventX, ev.EventY, ev.RootX, ev.RootY, ev.Time))
	}).Connect(xu, id)

	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		w.pointer(pointerEvent(frameless.PointerMove, 0, ev.State, ev.EventX, ev.EventY, ev.RootX, ev.RootY, ev.Time))
	}).Connect(xu, id)

	xevent.LeaveNotifyFun(func(_ *xgbutil.XUtil, ev xevent.LeaveNotifyEvent) {
		w.pointer(pointerEvent(frameless.PointerLeave, 0, ev.State, ev.EventX, ev.EventY, ev.RootX, ev.RootY, ev.Time))
	}).Connect(xu, id)

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		w.syncGeometry(false)
	}).Connect(xu, id)

	xevent.MapNotifyFun(func(_ *xgbutil.XUtil, _ xevent.MapNotifyEvent) {
		w.realized = true
		w.syncMaximized()
		w.syncGeometry(true)
	}).Connect(xu, id)

	xevent.UnmapNotifyFun(func(_ *xgbutil.XUtil, _ xevent.UnmapNotifyEvent) {
		w.realized = false
		w.ctrl.HandleUnmap()
	}).Connect(xu, id)

	xevent.PropertyNotifyFun(func(_ *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if ev.Atom == w.stateAtom {
			w.syncMaximized()
		}
	}).Connect(xu, id)

	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			w.paint()
		}
	}).Connect(xu, id)

	xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, _ xevent.DestroyNotifyEvent) {
		w.finish()
	}).Connect(xu, id)

	w.xwin.WMGracefulClose(func(*xwindow.Window) {
		w.logger.Debug("window manager asked to close")
		w.ctrl.Close()
	})
}

func (w *Window) pointer(ev frameless.PointerEvent) {
	if w.ctrl != nil && !w.closed {
		w.ctrl.HandlePointer(ev)
	}
}

// syncGeometry reads the frame from the server and relays the controller
// when it changed.
func (w *Window) syncGeometry(force bool) {
	if w.closed {
		return
	}
	x, y, width, height, err := w.conn.WindowGeometry(w.xwin.Id)
	if err != nil {
		w.logger.Debug("geometry query failed", "err", err)
		return
	}
	r := geom.Rect{X: x, Y: y, Width: width, Height: height}
	if r == w.geometry && !force {
		return
	}
	w.geometry = r
	w.ctrl.HandleConfigure()
}

// syncMaximized follows _NET_WM_STATE. A fallback maximize has no state to
// follow and is left alone.
func (w *Window) syncMaximized() {
	if w.closed || w.fallbackMax {
		return
	}
	maximized := w.conn.IsMaximized(w.xwin.Id)
	if maximized == w.maximized {
		return
	}
	w.maximized = maximized
	if w.realized {
		w.ctrl.HandleConfigure()
	}
}

func (w *Window) paint() {
	if w.ctrl == nil || w.closed || !w.realized {
		return
	}
	w.painter.Paint(w.ctrl, w.geometry.Width, w.geometry.Height)
}

func (w *Window) Realized() bool { return w.realized && !w.closed }

func (w *Window) Geometry() geom.Rect { return w.geometry }

func (w *Window) SetGeometry(r geom.Rect) error {
	if w.closed {
		return frameless.ErrNotRealized
	}
	w.conn.MoveResizeWindow(w.xwin.Id, r.X, r.Y, r.Width, r.Height)
	w.geometry = r
	return nil
}

func (w *Window) Move(origin geom.Point) error {
	if w.closed {
		return frameless.ErrNotRealized
	}
	w.conn.MoveWindow(w.xwin.Id, origin.X, origin.Y)
	w.geometry = w.geometry.MoveTo(origin)
	return nil
}

func (w *Window) SetSizeBounds(b geom.SizeBounds) error {
	return w.conn.SetSizeHints(w.xwin.Id, b.MinWidth, b.MinHeight, b.MaxWidth, b.MaxHeight)
}

func (w *Window) IsMaximized() bool { return w.maximized }

// Maximize asks the window manager through _NET_WM_STATE, or fills the work
// area under the window when that is unsupported.
func (w *Window) Maximize() error {
	if w.closed {
		return frameless.ErrNotRealized
	}
	if w.maximized {
		return nil
	}
	if w.conn.Supports("_NET_WM_STATE_MAXIMIZED_VERT") {
		err := w.conn.SetMaximized(w.xwin.Id, true)
		if err == nil {
			w.maximized = true
			return nil
		}
		w.logger.Debug("_NET_WM_STATE maximize failed, using work area", "err", err)
	}

	center := geom.Point{X: w.geometry.X + w.geometry.Width/2, Y: w.geometry.Y + w.geometry.Height/2}
	area, err := w.conn.WorkAreaAt(center)
	if err != nil {
		return fmt.Errorf("failed to find work area: %w", err)
	}
	if err := w.SetGeometry(area); err != nil {
		return err
	}
	w.maximized = true
	w.fallbackMax = true
	return nil
}

// Restore clears the maximized state. The controller puts back the saved
// geometry.
func (w *Window) Restore() error {
	if w.closed {
		return frameless.ErrNotRealized
	}
	if !w.maximized {
		return nil
	}
	if !w.fallbackMax {
		if err := w.conn.SetMaximized(w.xwin.Id, false); err != nil {
			return err
		}
	}
	w.maximized = false
	w.fallbackMax = false
	return nil
}

func (w *Window) Minimize() error {
	if w.closed {
		return frameless.ErrNotRealized
	}
	return w.conn.Iconify(w.xwin.Id)
}

// Close destroys the native window. OnClosed runs once the destruction is
// noticed, or immediately when the event never arrives.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.realized = false
	for _, c := range w.cursors {
		xproto.FreeCursor(w.conn.XUtil.Conn(), c)
	}
	w.painter.Close()
	// Destroy also detaches every event callback on the window.
	w.xwin.Destroy()
	w.finish()
	return nil
}

func (w *Window) finish() {
	w.closed = true
	if cb := w.OnClosed; cb != nil {
		w.OnClosed = nil
		cb()
	}
}

func (w *Window) SetTitle(title string) error {
	if w.closed {
		return frameless.ErrNotRealized
	}
	return w.conn.SetTitle(w.xwin.Id, title)
}

func (w *Window) SetCursor(shape frameless.CursorShape) error {
	if w.closed {
		return frameless.ErrNotRealized
	}
	cursor, ok := w.cursors[shape]
	if !ok {
		var err error
		cursor, err = xcursor.CreateCursor(w.conn.XUtil, cursorGlyph(shape))
		if err != nil {
			return fmt.Errorf("failed to create %s cursor: %w", shape, err)
		}
		w.cursors[shape] = cursor
	}
	return xproto.ChangeWindowAttributesChecked(w.conn.XUtil.Conn(), w.xwin.Id, xproto.CwCursor, []uint32{uint32(cursor)}).Check()
}

// Update repaints immediately; the chrome is a handful of requests.
func (w *Window) Update() {
	w.paint()
}

// BeginSystemGesture hands the gesture to the window manager with
// _NET_WM_MOVERESIZE.
func (w *Window) BeginSystemGesture(region frameless.RegionKind, global geom.Point, button frameless.Button) error {
	if w.closed {
		return frameless.ErrNotRealized
	}
	dir, ok := moveResizeDirection(region)
	if !ok {
		return fmt.Errorf("region %s has no window manager gesture", region)
	}
	return w.conn.RequestMoveResize(w.xwin.Id, global.X, global.Y, dir, buttonDetail(button))
}
