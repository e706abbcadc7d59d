package preview

import (
	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
)

// staticHost is a window that never moves. It lets a Controller lay out
// the chrome for an offscreen render.
type staticHost struct {
	geometry  geom.Rect
	maximized bool
	title     string
}

var _ frameless.Host = (*staticHost)(nil)

func (h *staticHost) Realized() bool                        { return true }
func (h *staticHost) Geometry() geom.Rect                   { return h.geometry }
func (h *staticHost) SetGeometry(r geom.Rect) error         { h.geometry = r; return nil }
func (h *staticHost) SetSizeBounds(geom.SizeBounds) error   { return nil }
func (h *staticHost) IsMaximized() bool                     { return h.maximized }
func (h *staticHost) Maximize() error                       { h.maximized = true; return nil }
func (h *staticHost) Restore() error                        { h.maximized = false; return nil }
func (h *staticHost) Minimize() error                       { return nil }
func (h *staticHost) Close() error                          { return nil }
func (h *staticHost) SetTitle(title string) error           { h.title = title; return nil }
func (h *staticHost) SetCursor(frameless.CursorShape) error { return nil }
func (h *staticHost) Update()                               {}

func (h *staticHost) Move(origin geom.Point) error {
	h.geometry = h.geometry.MoveTo(origin)
	return nil
}
