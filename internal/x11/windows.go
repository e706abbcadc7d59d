package x11

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WindowSpec describes a top-level window to create.
type WindowSpec struct {
	Title      string
	Class      string
	X          int
	Y          int
	Width      int
	Height     int
	Background uint32
}

// ClientEventMask is the set of events a frameless window listens for.
const ClientEventMask = xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskKeyPress

// CreateFramelessWindow creates an unmapped top-level window that asks the
// window manager for no decorations.
func (c *Connection) CreateFramelessWindow(spec WindowSpec) (*xwindow.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	// Value list order follows the bit positions of the mask (low to high).
	if err := win.CreateChecked(c.Root,
		spec.X, spec.Y, spec.Width, spec.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		spec.Background, ClientEventMask,
	); err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	hints := &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationNone,
	}
	if err := motif.WmHintsSet(c.XUtil, win.Id, hints); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to remove decorations: %w", err)
	}

	if err := c.SetTitle(win.Id, spec.Title); err != nil {
		win.Destroy()
		return nil, err
	}
	class := spec.Class
	if class == "" {
		class = "Frameless"
	}
	if err := icccm.WmClassSet(c.XUtil, win.Id, &icccm.WmClass{Instance: "frameless", Class: class}); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to set WM_CLASS: %w", err)
	}
	if err := icccm.WmProtocolsSet(c.XUtil, win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}

	// Type and pid are advisory; some window managers ignore them.
	ewmh.WmWindowTypeSet(c.XUtil, win.Id, []string{"_NET_WM_WINDOW_TYPE_NORMAL"})
	ewmh.WmPidSet(c.XUtil, win.Id, uint(os.Getpid()))

	return win, nil
}

// SetTitle sets both the EWMH (UTF-8) and ICCCM window names.
func (c *Connection) SetTitle(windowID xproto.Window, title string) error {
	if err := ewmh.WmNameSet(c.XUtil, windowID, title); err != nil {
		return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}
	if err := icccm.WmNameSet(c.XUtil, windowID, title); err != nil {
		return fmt.Errorf("failed to set WM_NAME: %w", err)
	}
	return nil
}

// SetSizeHints publishes the minimum and maximum size in WM_NORMAL_HINTS.
func (c *Connection) SetSizeHints(windowID xproto.Window, minWidth, minHeight, maxWidth, maxHeight int) error {
	hints := &icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		MinWidth:  uint(max(minWidth, 1)),
		MinHeight: uint(max(minHeight, 1)),
		MaxWidth:  uint(maxWidth),
		MaxHeight: uint(maxHeight),
	}
	if err := icccm.WmNormalHintsSet(c.XUtil, windowID, hints); err != nil {
		return fmt.Errorf("failed to set WM_NORMAL_HINTS: %w", err)
	}
	return nil
}

// WindowGeometry returns the window rectangle in root coordinates.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get geometry: %w", err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to translate coordinates: %w", err)
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry.
// The request is not checked, so pointer handlers never wait on the server;
// failures arrive through the event loop's error handler.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) {
	mask, values := configureRequest(x, y, width, height, true)
	xproto.ConfigureWindow(c.XUtil.Conn(), windowID, mask, values)
}

// MoveWindow moves a window without changing its size. Like
// MoveResizeWindow it does not wait for the server.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) {
	mask, values := configureRequest(x, y, 0, 0, false)
	xproto.ConfigureWindow(c.XUtil.Conn(), windowID, mask, values)
}

// configureRequest encodes a position, and optionally a size, as a
// ConfigureWindow mask and value list. Negative coordinates wrap to the
// two's complement the server reads as INT16.
func configureRequest(x, y, width, height int, withSize bool) (uint16, []uint32) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY)
	values := []uint32{uint32(int32(x)), uint32(int32(y))}
	if withSize {
		mask |= xproto.ConfigWindowWidth | xproto.ConfigWindowHeight
		values = append(values, uint32(max(width, 1)), uint32(max(height, 1)))
	}
	return mask, values
}
