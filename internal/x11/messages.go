package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// MoveResizeDirection is the direction field of _NET_WM_MOVERESIZE.
type MoveResizeDirection uint32

const (
	MoveResizeSizeTopLeft MoveResizeDirection = iota
	MoveResizeSizeTop
	MoveResizeSizeTopRight
	MoveResizeSizeRight
	MoveResizeSizeBottomRight
	MoveResizeSizeBottom
	MoveResizeSizeBottomLeft
	MoveResizeSizeLeft
	MoveResizeMove
)

const (
	sourceApplication = 1
	iconicState       = 3

	stateRemove = 0
	stateAdd    = 1
)

// Atom interns name.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

// sendRootMessage sends a 32-bit client message about win to the root window.
// The message is built by hand because the xgbutil ewmh request helpers
// panic on this library version (uint vs int type assertion).
func (c *Connection) sendRootMessage(win xproto.Window, typeName string, data ...uint32) error {
	typ, err := c.Atom(typeName)
	if err != nil {
		return err
	}

	payload := make([]uint32, 5)
	copy(payload, data)
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   typ,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}

	if err := xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check(); err != nil {
		return fmt.Errorf("failed to send %s: %w", typeName, err)
	}
	return nil
}

// RequestMoveResize hands an interactive move or resize of win to the window
// manager. The pointer grab implied by the press is released first so the
// window manager can take its own.
func (c *Connection) RequestMoveResize(win xproto.Window, rootX, rootY int, direction MoveResizeDirection, button uint32) error {
	if err := xproto.UngrabPointerChecked(c.XUtil.Conn(), xproto.TimeCurrentTime).Check(); err != nil {
		return fmt.Errorf("failed to release pointer grab: %w", err)
	}
	return c.sendRootMessage(win, "_NET_WM_MOVERESIZE",
		uint32(rootX), uint32(rootY), uint32(direction), button, sourceApplication)
}

// Iconify minimizes win via WM_CHANGE_STATE.
func (c *Connection) Iconify(win xproto.Window) error {
	return c.sendRootMessage(win, "WM_CHANGE_STATE", iconicState)
}

// SetMaximized adds or removes both maximized states in a single request.
func (c *Connection) SetMaximized(win xproto.Window, maximized bool) error {
	horz, err := c.Atom("_NET_WM_STATE_MAXIMIZED_HORZ")
	if err != nil {
		return err
	}
	vert, err := c.Atom("_NET_WM_STATE_MAXIMIZED_VERT")
	if err != nil {
		return err
	}
	action := uint32(stateRemove)
	if maximized {
		action = stateAdd
	}
	return c.sendRootMessage(win, "_NET_WM_STATE", action, uint32(horz), uint32(vert), sourceApplication)
}

// IsMaximized reports whether the window manager has maximized win in both
// directions.
func (c *Connection) IsMaximized(win xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return false
	}
	hasMaxH, hasMaxV := false, false
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			hasMaxH = true
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			hasMaxV = true
		}
	}
	return hasMaxH && hasMaxV
}

// Supports reports whether the window manager advertises hint in
// _NET_SUPPORTED.
func (c *Connection) Supports(hint string) bool {
	supported, err := ewmh.SupportedGet(c.XUtil)
	if err != nil {
		return false
	}
	for _, s := range supported {
		if s == hint {
			return true
		}
	}
	return false
}

// CompositorRunning reports whether a compositing manager owns the
// _NET_WM_CM_S<screen> selection.
func (c *Connection) CompositorRunning() bool {
	atom, err := c.Atom(fmt.Sprintf("_NET_WM_CM_S%d", c.ScreenNumber()))
	if err != nil {
		return false
	}
	reply, err := xproto.GetSelectionOwner(c.XUtil.Conn(), atom).Reply()
	if err != nil {
		return false
	}
	return reply.Owner != xproto.WindowNone
}
