package frameless

import (
	"time"

	"github.com/1broseidon/frameless/internal/geom"
)

const (
	// DefaultTitleBarHeight is the fixed height of the title strip.
	DefaultTitleBarHeight = 30
	// DefaultDoubleClickInterval is the longest gap between two presses that
	// still counts as a double-click.
	DefaultDoubleClickInterval = 400 * time.Millisecond

	doubleClickSlop = 4
	defaultTitle    = "Window Title"
)

// ButtonKind identifies a title bar control.
type ButtonKind int

const (
	ButtonMinimize ButtonKind = iota
	ButtonMaximize
	ButtonClose
)

func (k ButtonKind) String() string {
	switch k {
	case ButtonMinimize:
		return "minimize"
	case ButtonMaximize:
		return "maximize"
	case ButtonClose:
		return "close"
	default:
		return "unknown"
	}
}

// Glyph is the icon drawn on a control button.
type Glyph int

const (
	GlyphMinimize Glyph = iota
	GlyphMaximize
	GlyphRestore
	GlyphClose
)

// TitleButton is one control button in title-bar-local coordinates.
type TitleButton struct {
	Kind    ButtonKind
	Bounds  geom.Rect
	Glyph   Glyph
	Tooltip string
	Hovered bool
	Pressed bool
}

// TitleBar is the strip holding the window title and the control buttons.
//
// It never acts on the window itself except for its own drag; button
// activations go out through the On* callbacks.
type TitleBar struct {
	window  Mover
	chrome  Chrome
	title   string
	height  int
	width   int
	label   geom.Rect
	buttons []*TitleButton

	dragEnabled bool
	dragging    bool
	anchor      geom.Point

	pressed       *TitleButton
	doubleClick   time.Duration
	lastPressTime time.Duration
	// lastPressPos is in screen coordinates so a press after a drag does
	// not match the press that started it.
	lastPressPos  geom.Point
	hasLastPress  bool

	OnMinimizeRequested       func()
	OnMaximizeToggleRequested func()
	OnCloseRequested          func()
}

// NewTitleBar creates a draggable title bar for window. A nil chrome uses
// DefaultChrome.
func NewTitleBar(window Mover, chrome Chrome) *TitleBar {
	if chrome == nil {
		chrome = DefaultChrome{Margin: 5}
	}
	tb := &TitleBar{
		window:      window,
		chrome:      chrome,
		title:       defaultTitle,
		height:      DefaultTitleBarHeight,
		dragEnabled: true,
		doubleClick: DefaultDoubleClickInterval,
	}
	chrome.InitializeButtons(tb)
	tb.UpdateButtonStates()
	return tb
}

func (tb *TitleBar) SetTitle(title string) { tb.title = title }
func (tb *TitleBar) Title() string         { return tb.title }

// SetHeight changes the fixed height and re-runs the layout.
func (tb *TitleBar) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	tb.height = height
	tb.layout()
}

func (tb *TitleBar) Height() int { return tb.height }
func (tb *TitleBar) Width() int  { return tb.width }

// SetWidth re-runs the layout for a new bar width.
func (tb *TitleBar) SetWidth(width int) {
	if width < 0 {
		width = 0
	}
	tb.width = width
	tb.layout()
}

// SetDragEnabled turns the title bar's own drag-to-move on or off. A
// controller that moves the window itself turns it off.
func (tb *TitleBar) SetDragEnabled(enabled bool) {
	tb.dragEnabled = enabled
	if !enabled {
		tb.dragging = false
	}
}

// SetDoubleClickInterval sets the double-click window; zero disables it.
func (tb *TitleBar) SetDoubleClickInterval(d time.Duration) {
	tb.doubleClick = d
}

// Dragging reports whether the title bar is moving the window.
func (tb *TitleBar) Dragging() bool { return tb.dragging }

// Label returns the title label bounds.
func (tb *TitleBar) Label() geom.Rect { return tb.label }

// AddButton appends a control button. Chrome implementations call it from
// InitializeButtons.
func (tb *TitleBar) AddButton(kind ButtonKind) {
	if tb.button(kind) != nil {
		return
	}
	btn := &TitleButton{Kind: kind}
	switch kind {
	case ButtonMinimize:
		btn.Glyph, btn.Tooltip = GlyphMinimize, "Minimize"
	case ButtonMaximize:
		btn.Glyph, btn.Tooltip = GlyphMaximize, "Maximize"
	case ButtonClose:
		btn.Glyph, btn.Tooltip = GlyphClose, "Close"
	}
	tb.buttons = append(tb.buttons, btn)
}

// ButtonKinds lists the buttons in the order they were added.
func (tb *TitleBar) ButtonKinds() []ButtonKind {
	kinds := make([]ButtonKind, 0, len(tb.buttons))
	for _, b := range tb.buttons {
		kinds = append(kinds, b.Kind)
	}
	return kinds
}

// SetButtonBounds places a button. Chrome implementations call it from
// SetupLayout.
func (tb *TitleBar) SetButtonBounds(kind ButtonKind, r geom.Rect) {
	if b := tb.button(kind); b != nil {
		b.Bounds = r
	}
}

// SetLabelBounds places the title label.
func (tb *TitleBar) SetLabelBounds(r geom.Rect) { tb.label = r }

// Buttons returns a snapshot of the control buttons for painting.
func (tb *TitleBar) Buttons() []TitleButton {
	out := make([]TitleButton, 0, len(tb.buttons))
	for _, b := range tb.buttons {
		out = append(out, *b)
	}
	return out
}

// Button returns a snapshot of one button.
func (tb *TitleBar) Button(kind ButtonKind) (TitleButton, bool) {
	b := tb.button(kind)
	if b == nil {
		return TitleButton{}, false
	}
	return *b, true
}

// UpdateButtonStates refreshes the maximize button to match the window state.
func (tb *TitleBar) UpdateButtonStates() {
	b := tb.button(ButtonMaximize)
	if b == nil {
		return
	}
	if tb.window != nil && tb.window.IsMaximized() {
		b.Glyph, b.Tooltip = GlyphRestore, "Restore"
	} else {
		b.Glyph, b.Tooltip = GlyphMaximize, "Maximize"
	}
}

// HandlePointer processes an event in title-bar-local coordinates and
// reports whether the title bar consumed it.
func (tb *TitleBar) HandlePointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerPress:
		return tb.press(ev)
	case PointerMove:
		return tb.move(ev)
	case PointerRelease:
		return tb.release(ev)
	case PointerLeave:
		tb.setHover(nil)
		return false
	default:
		return false
	}
}

func (tb *TitleBar) press(ev PointerEvent) bool {
	if ev.Button != ButtonPrimary {
		return false
	}

	if b := tb.buttonAt(ev.Local); b != nil {
		b.Pressed = true
		tb.pressed = b
		tb.hasLastPress = false
		return true
	}

	if tb.isDoubleClick(ev) {
		tb.hasLastPress = false
		tb.dragging = false
		tb.emit(ButtonMaximize)
		return true
	}
	tb.lastPressTime = ev.Time
	tb.lastPressPos = ev.Global
	tb.hasLastPress = true

	if !tb.dragEnabled || tb.window == nil {
		return false
	}
	tb.dragging = true
	tb.anchor = ev.Global.Sub(tb.window.Geometry().Origin())
	return true
}

func (tb *TitleBar) move(ev PointerEvent) bool {
	changed := tb.setHover(tb.buttonAt(ev.Local))
	if tb.dragging {
		if !ev.Buttons.Has(ButtonPrimary) {
			tb.dragging = false
			return changed
		}
		if err := tb.window.Move(ev.Global.Sub(tb.anchor)); err != nil {
			tb.dragging = false
		}
		return true
	}
	return changed
}

func (tb *TitleBar) release(ev PointerEvent) bool {
	if ev.Button != ButtonPrimary {
		return false
	}
	consumed := tb.dragging
	tb.dragging = false

	if b := tb.pressed; b != nil {
		b.Pressed = false
		tb.pressed = nil
		if b.Bounds.Contains(ev.Local) {
			tb.emit(b.Kind)
		}
		return true
	}
	return consumed
}

func (tb *TitleBar) isDoubleClick(ev PointerEvent) bool {
	if !tb.hasLastPress || tb.doubleClick <= 0 {
		return false
	}
	if ev.Time < tb.lastPressTime || ev.Time-tb.lastPressTime > tb.doubleClick {
		return false
	}
	d := ev.Global.Sub(tb.lastPressPos)
	return abs(d.X) <= doubleClickSlop && abs(d.Y) <= doubleClickSlop
}

func (tb *TitleBar) emit(kind ButtonKind) {
	var fn func()
	switch kind {
	case ButtonMinimize:
		fn = tb.OnMinimizeRequested
	case ButtonMaximize:
		fn = tb.OnMaximizeToggleRequested
	case ButtonClose:
		fn = tb.OnCloseRequested
	}
	if fn != nil {
		fn()
	}
}

// setHover marks b as hovered and reports whether anything changed.
func (tb *TitleBar) setHover(b *TitleButton) bool {
	changed := false
	for _, other := range tb.buttons {
		hovered := other == b
		if other.Hovered != hovered {
			other.Hovered = hovered
			changed = true
		}
	}
	return changed
}

func (tb *TitleBar) buttonAt(p geom.Point) *TitleButton {
	for _, b := range tb.buttons {
		if b.Bounds.Contains(p) {
			return b
		}
	}
	return nil
}

func (tb *TitleBar) button(kind ButtonKind) *TitleButton {
	for _, b := range tb.buttons {
		if b.Kind == kind {
			return b
		}
	}
	return nil
}

func (tb *TitleBar) layout() {
	tb.chrome.SetupLayout(tb, tb.width)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
