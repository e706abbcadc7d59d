package x11

import (
	"fmt"

	"github.com/1broseidon/frameless/internal/geom"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	Bounds geom.Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:   i,
			Name: name,
			Bounds: geom.Rect{
				X:      int(info.X),
				Y:      int(info.Y),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
		})
	}

	return monitors, nil
}

// WorkAreaAt returns the usable area (excluding panels and docks) of the
// monitor containing p. Without RandR the root window is used as the only
// monitor.
func (c *Connection) WorkAreaAt(p geom.Point) (geom.Rect, error) {
	root, err := c.rootRect()
	if err != nil {
		return geom.Rect{}, err
	}

	monitors, err := c.GetMonitors()
	if err != nil || len(monitors) == 0 {
		monitors = []Monitor{{Name: "root", Bounds: root}}
	}
	mon := monitorAt(monitors, p)

	area := mon.Bounds
	if struts, ok := c.dockStruts(root, area); ok {
		return struts.shrink(area), nil
	}

	// Fallback: intersect with the current desktop's _NET_WORKAREA.
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return area, nil
	}
	desktop := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
		desktop = int(current)
	}
	wa := workArea[desktop]
	clipped := area.Intersect(geom.Rect{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)})
	if clipped.Empty() {
		return area, nil
	}
	return clipped, nil
}

func (c *Connection) rootRect() (geom.Rect, error) {
	reply, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geom.Rect{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return geom.Rect{Width: int(reply.Width), Height: int(reply.Height)}, nil
}

// monitorAt returns the monitor containing p, or the first monitor.
func monitorAt(monitors []Monitor, p geom.Point) Monitor {
	for _, m := range monitors {
		if m.Bounds.Contains(p) {
			return m
		}
	}
	return monitors[0]
}

type struts struct {
	left   int
	right  int
	top    int
	bottom int
}

func (s struts) empty() bool {
	return s.left == 0 && s.right == 0 && s.top == 0 && s.bottom == 0
}

func (s struts) shrink(r geom.Rect) geom.Rect {
	r.X += s.left
	r.Y += s.top
	r.Width = max(r.Width-s.left-s.right, 1)
	r.Height = max(r.Height-s.top-s.bottom, 1)
	return r
}

// dockStruts accumulates the struts of every dock window overlapping mon.
func (c *Connection) dockStruts(root, mon geom.Rect) (struts, bool) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return struts{}, false
	}

	var acc struts
	for _, windowID := range clients {
		if !c.isDock(windowID) {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			acc.add(mon, root, sp)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			acc.add(mon, root, &ewmh.WmStrutPartial{
				Left:       s.Left,
				Right:      s.Right,
				Top:        s.Top,
				Bottom:     s.Bottom,
				LeftEndY:   uint(root.Height - 1),
				RightEndY:  uint(root.Height - 1),
				TopEndX:    uint(root.Width - 1),
				BottomEndX: uint(root.Width - 1),
			})
		}
	}

	return acc, !acc.empty()
}

func (c *Connection) isDock(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// add folds one strut into acc, counting only the part that overlaps mon.
func (acc *struts) add(mon, root geom.Rect, sp *ewmh.WmStrutPartial) {
	if sp.Top > 0 {
		band := geom.Rect{X: int(sp.TopStartX), Y: 0, Width: int(sp.TopEndX) - int(sp.TopStartX) + 1, Height: int(sp.Top)}
		acc.top = max(acc.top, mon.Intersect(band).Height)
	}
	if sp.Bottom > 0 {
		band := geom.Rect{X: int(sp.BottomStartX), Y: root.Height - int(sp.Bottom), Width: int(sp.BottomEndX) - int(sp.BottomStartX) + 1, Height: int(sp.Bottom)}
		acc.bottom = max(acc.bottom, mon.Intersect(band).Height)
	}
	if sp.Left > 0 {
		band := geom.Rect{X: 0, Y: int(sp.LeftStartY), Width: int(sp.Left), Height: int(sp.LeftEndY) - int(sp.LeftStartY) + 1}
		acc.left = max(acc.left, mon.Intersect(band).Width)
	}
	if sp.Right > 0 {
		band := geom.Rect{X: root.Width - int(sp.Right), Y: int(sp.RightStartY), Width: int(sp.Right), Height: int(sp.RightEndY) - int(sp.RightStartY) + 1}
		acc.right = max(acc.right, mon.Intersect(band).Width)
	}
}
