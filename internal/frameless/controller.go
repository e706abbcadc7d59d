package frameless

import (
	"log/slog"
	"time"

	"github.com/1broseidon/frameless/internal/geom"
)

// DefaultResizeBorder is the thickness of the hit-testable band on each edge.
const DefaultResizeBorder = 5

// HitTestPolicy decides who performs move and resize gestures.
type HitTestPolicy string

const (
	// HitTestApp runs every gesture through the controller's pointer handling
	// and reports native hit-test queries as unhandled.
	HitTestApp HitTestPolicy = "app"
	// HitTestWM hands press gestures to the window manager and answers native
	// hit-test queries with the classified region.
	HitTestWM HitTestPolicy = "wm"
)

// Options configures a Controller.
type Options struct {
	ResizeBorder        int
	TitleBarHeight      int
	Bounds              geom.SizeBounds
	HitTest             HitTestPolicy
	DoubleClickInterval time.Duration
	Chrome              Chrome
	Shadow              ShadowStrategy
	Logger              *slog.Logger
}

// DefaultOptions returns the stock window behaviour: a 5px border, a 30px
// title bar and a 200x150 minimum size.
func DefaultOptions() Options {
	bounds := geom.DefaultSizeBounds()
	bounds.MinWidth = 200
	bounds.MinHeight = 150
	return Options{
		ResizeBorder:        DefaultResizeBorder,
		TitleBarHeight:      DefaultTitleBarHeight,
		Bounds:              bounds,
		HitTest:             HitTestApp,
		DoubleClickInterval: DefaultDoubleClickInterval,
	}
}

// State is a snapshot of the controller for status reporting.
type State struct {
	Title     string
	Geometry  geom.Rect
	Maximized bool
	Phase     Phase
	Region    RegionKind
	Cursor    CursorShape
	Shadow    string
	HitTest   HitTestPolicy
}

// Controller is the frameless window: it owns the title bar, the central
// widget and the gesture session, and drives the host from pointer events.
type Controller struct {
	host     Host
	opts     Options
	logger   *slog.Logger
	titleBar *TitleBar
	central  Widget
	shadow   *ShadowRenderer

	session Session
	cursor  CursorShape

	restore    geom.Rect
	hasRestore bool
	closed     bool
}

// NewController wires a title bar and shadow renderer to host.
func NewController(host Host, opts Options) *Controller {
	if opts.ResizeBorder < 0 {
		opts.ResizeBorder = 0
	}
	if opts.TitleBarHeight <= 0 {
		opts.TitleBarHeight = DefaultTitleBarHeight
	}
	if opts.Bounds.MaxWidth <= 0 {
		opts.Bounds.MaxWidth = geom.MaxSize
	}
	if opts.Bounds.MaxHeight <= 0 {
		opts.Bounds.MaxHeight = geom.MaxSize
	}
	if opts.HitTest == "" {
		opts.HitTest = HitTestApp
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		host:   host,
		opts:   opts,
		logger: logger,
	}

	if err := host.SetSizeBounds(opts.Bounds); err != nil {
		logger.Debug("size bounds not applied", "err", err)
	}

	c.titleBar = NewTitleBar(host, opts.Chrome)
	c.titleBar.SetHeight(opts.TitleBarHeight)
	c.titleBar.SetDoubleClickInterval(opts.DoubleClickInterval)
	// The controller owns the Dragging phase.
	c.titleBar.SetDragEnabled(false)
	c.titleBar.OnMinimizeRequested = c.Minimize
	c.titleBar.OnMaximizeToggleRequested = c.ToggleMaximize
	c.titleBar.OnCloseRequested = c.Close

	c.relayout(host.Geometry())
	c.shadow = NewShadowRenderer(host, opts.Shadow, logger)
	return c
}

// TitleBar returns the window's title bar.
func (c *Controller) TitleBar() *TitleBar { return c.titleBar }

// CentralWidget returns the content widget, or nil.
func (c *Controller) CentralWidget() Widget { return c.central }

// SetCentralWidget replaces the content widget. The previous widget is
// destroyed.
func (c *Controller) SetCentralWidget(w Widget) {
	if c.central != nil {
		c.central.Destroy()
	}
	c.central = w
	if w != nil {
		w.SetBounds(c.ContentRect())
	}
	c.host.Update()
}

// SetWindowTitle sets both the native title and the title bar label.
func (c *Controller) SetWindowTitle(title string) {
	if err := c.host.SetTitle(title); err != nil {
		c.logger.Debug("native title not set", "err", err)
	}
	c.titleBar.SetTitle(title)
	c.host.Update()
}

// TitleBarRect returns the title bar bounds in window-local coordinates.
func (c *Controller) TitleBarRect() geom.Rect {
	frame := c.host.Geometry()
	b := c.opts.ResizeBorder
	return geom.Rect{X: b, Y: b, Width: max(frame.Width-2*b, 0), Height: c.titleBar.Height()}
}

// ContentRect returns the central widget bounds in window-local coordinates.
func (c *Controller) ContentRect() geom.Rect {
	frame := c.host.Geometry()
	b := c.opts.ResizeBorder
	top := b + c.titleBar.Height()
	return geom.Rect{
		X:      b,
		Y:      top,
		Width:  max(frame.Width-2*b, 0),
		Height: max(frame.Height-top-b, 0),
	}
}

// Session returns the current gesture session.
func (c *Controller) Session() Session { return c.session }

// Phase returns the current gesture phase.
func (c *Controller) Phase() Phase { return c.session.Phase() }

// Cursor returns the last cursor glyph sent to the host.
func (c *Controller) Cursor() CursorShape { return c.cursor }

// State returns a status snapshot.
func (c *Controller) State() State {
	return State{
		Title:     c.titleBar.Title(),
		Geometry:  c.host.Geometry(),
		Maximized: c.host.IsMaximized(),
		Phase:     c.session.Phase(),
		Region:    c.session.Region,
		Cursor:    c.cursor,
		Shadow:    c.shadow.Strategy(),
		HitTest:   c.opts.HitTest,
	}
}

// Classify classifies a window-local position against the current geometry.
func (c *Controller) Classify(local geom.Point) RegionKind {
	frame := c.host.Geometry()
	return Classify(local, frame.Width, frame.Height, c.TitleBarRect(), c.opts.ResizeBorder, c.host.IsMaximized())
}

// NativeHitTest answers the window system's hit-test query for a screen
// position. Under HitTestApp the region is computed but reported as not
// handled, leaving gestures to HandlePointer.
func (c *Controller) NativeHitTest(global geom.Point) (RegionKind, bool) {
	local := global.Sub(c.host.Geometry().Origin())
	region := c.Classify(local)
	if c.opts.HitTest != HitTestWM {
		return region, false
	}
	return region, region != RegionNone
}

// HandlePointer feeds one pointer event through the state machine.
func (c *Controller) HandlePointer(ev PointerEvent) {
	if c.closed {
		return
	}
	switch ev.Kind {
	case PointerPress:
		c.pointerPressed(ev)
	case PointerMove:
		c.pointerMoved(ev)
	case PointerRelease:
		c.pointerReleased(ev)
	case PointerLeave:
		if c.titleBar.HandlePointer(ev) {
			c.host.Update()
		}
		if !c.session.Active {
			c.setCursor(CursorArrow)
		}
	}
}

// HandleConfigure is called when the window system reports new geometry
// (window-manager maximize, external move).
func (c *Controller) HandleConfigure() {
	c.relayout(c.host.Geometry())
	c.titleBar.UpdateButtonStates()
	c.shadow.Refresh()
	c.host.Update()
}

// HandleUnmap is called when the window is hidden or iconified.
func (c *Controller) HandleUnmap() {
	c.session.Reset()
	c.shadow.Hide()
}

func (c *Controller) pointerPressed(ev PointerEvent) {
	if ev.Button != ButtonPrimary {
		return
	}
	frame := c.host.Geometry()

	tbRect := c.TitleBarRect()
	if tbRect.Contains(ev.Local) {
		if c.titleBar.HandlePointer(c.toTitleBar(ev, tbRect)) {
			c.host.Update()
			return
		}
	}

	region := Classify(ev.Local, frame.Width, frame.Height, tbRect, c.opts.ResizeBorder, c.host.IsMaximized())
	if region == RegionNone {
		return
	}

	if c.opts.HitTest == HitTestWM {
		if gh, ok := c.host.(SystemGestureHost); ok {
			if err := gh.BeginSystemGesture(region, ev.Global, ev.Button); err != nil {
				c.logger.Debug("system gesture refused", "region", region, "err", err)
			}
			return
		}
	}

	c.session.begin(region, ev.Global.Sub(frame.Origin()))
	c.setCursor(CursorFor(region))
	c.logger.Debug("gesture started", "phase", c.session.Phase(), "region", region)
}

func (c *Controller) pointerMoved(ev PointerEvent) {
	frame := c.host.Geometry()
	tbRect := c.TitleBarRect()

	region := Classify(ev.Local, frame.Width, frame.Height, tbRect, c.opts.ResizeBorder, c.host.IsMaximized())
	c.setCursor(CursorFor(region))

	tbEvent := c.toTitleBar(ev, tbRect)
	if !tbRect.Contains(ev.Local) {
		tbEvent.Kind = PointerLeave
	}
	if c.titleBar.HandlePointer(tbEvent) {
		c.host.Update()
	}

	if !c.session.Active {
		return
	}
	if !ev.Buttons.Has(ButtonPrimary) {
		c.endGesture()
		return
	}

	switch c.session.Phase() {
	case PhaseDragging:
		if err := c.host.Move(ev.Global.Sub(c.session.Anchor)); err != nil {
			c.logger.Debug("move failed", "err", err)
			return
		}
		c.shadow.Refresh()
	case PhaseResizing:
		c.resizeTo(frame, ev.Global)
	}
}

func (c *Controller) resizeTo(frame geom.Rect, global geom.Point) {
	candidate := resizeCandidate(frame, c.session.Region, global)
	if !c.opts.Bounds.Admits(candidate) {
		return
	}
	if candidate == frame {
		return
	}
	if err := c.host.SetGeometry(candidate); err != nil {
		c.logger.Debug("resize failed", "err", err)
		return
	}
	c.relayout(candidate)
	c.shadow.Refresh()
	c.host.Update()
}

func (c *Controller) pointerReleased(ev PointerEvent) {
	if ev.Button != ButtonPrimary {
		return
	}
	tbRect := c.TitleBarRect()
	if c.titleBar.HandlePointer(c.toTitleBar(ev, tbRect)) {
		c.host.Update()
	}
	c.endGesture()
}

func (c *Controller) endGesture() {
	if c.session.Active {
		c.logger.Debug("gesture ended", "phase", c.session.Phase(), "region", c.session.Region)
	}
	c.session.Reset()
	c.setCursor(CursorArrow)
}

// Minimize iconifies the window.
func (c *Controller) Minimize() {
	c.session.Reset()
	if err := c.host.Minimize(); err != nil {
		c.logger.Debug("minimize failed", "err", err)
	}
}

// ToggleMaximize maximizes a normal window or restores a maximized one to
// the geometry it had before maximizing.
func (c *Controller) ToggleMaximize() {
	c.session.Reset()
	if c.host.IsMaximized() {
		if err := c.host.Restore(); err != nil {
			// Still maximized; keep the geometry for the next attempt.
			c.logger.Debug("restore failed", "err", err)
			return
		}
		if c.hasRestore {
			if err := c.host.SetGeometry(c.restore); err != nil {
				c.logger.Debug("restore geometry not applied", "err", err)
			}
			c.hasRestore = false
		}
	} else {
		c.restore = c.host.Geometry()
		c.hasRestore = true
		if err := c.host.Maximize(); err != nil {
			c.logger.Debug("maximize failed", "err", err)
			c.hasRestore = false
		}
	}
	c.titleBar.UpdateButtonStates()
	c.relayout(c.host.Geometry())
	c.shadow.Refresh()
	c.host.Update()
}

// Close closes the window and releases the shadow.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.session.Reset()
	c.shadow.Release()
	if c.central != nil {
		c.central.Destroy()
		c.central = nil
	}
	if err := c.host.Close(); err != nil {
		c.logger.Debug("close failed", "err", err)
	}
}

// Closed reports whether Close has run.
func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) relayout(frame geom.Rect) {
	c.titleBar.SetWidth(max(frame.Width-2*c.opts.ResizeBorder, 0))
	if c.central != nil {
		c.central.SetBounds(c.ContentRect())
	}
}

func (c *Controller) setCursor(shape CursorShape) {
	if shape == c.cursor {
		return
	}
	if err := c.host.SetCursor(shape); err != nil {
		c.logger.Debug("cursor not set", "cursor", shape, "err", err)
		return
	}
	c.cursor = shape
}

func (c *Controller) toTitleBar(ev PointerEvent, tbRect geom.Rect) PointerEvent {
	ev.Local = ev.Local.Sub(tbRect.Origin())
	return ev
}
