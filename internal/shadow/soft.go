package shadow

import (
	"fmt"
	"image"

	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
	"github.com/1broseidon/frameless/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

// band is one override-redirect strip of the soft shadow.
type band struct {
	win     xproto.Window
	img     *xgraphics.Image
	painted geom.Rect
	// offset is the band origin relative to the frame when painted; a pure
	// move keeps the bitmap.
	offset geom.Point
	mapped bool
}

// Soft paints the shadow into four windows around the frame.
type Soft struct {
	conn    *x11.Connection
	frame   xproto.Window
	params  Params
	bands   [4]band
	created bool
	// sibling is the window the bands are stacked below, resolved on the
	// first placement after the bands are shown.
	sibling xproto.Window
}

var _ frameless.ShadowStrategy = (*Soft)(nil)

// NewSoft returns a fallback strategy that shadows frame.
func NewSoft(conn *x11.Connection, frame xproto.Window, params Params) *Soft {
	return &Soft{conn: conn, frame: frame, params: params}
}

func (s *Soft) Name() string { return StrategySoft }

// Apply positions and repaints the bands. Maximized windows have no shadow.
func (s *Soft) Apply(frame frameless.ShadowFrame) error {
	if s.conn == nil {
		return frameless.ErrNotRealized
	}
	if frame.Maximized || s.params.Radius == 0 || s.params.Alpha == 0 {
		return s.Hide()
	}
	if err := s.ensureWindows(); err != nil {
		return err
	}

	_, rects := Layout(frame.Bounds, s.params)
	for i := range s.bands {
		b := &s.bands[i]
		r := rects[i]
		if r.Empty() {
			s.unmap(b)
			continue
		}
		offset := r.Origin().Sub(frame.Bounds.Origin())
		if b.img == nil || b.painted.Width != r.Width || b.painted.Height != r.Height || b.offset != offset {
			if err := s.paint(b, r, frame.Bounds); err != nil {
				return err
			}
			b.offset = offset
		}
		b.painted = r
		s.place(b, r)
	}
	return nil
}

// SetParams replaces the shadow parameters. Bitmaps are repainted on the
// next Apply.
func (s *Soft) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	for i := range s.bands {
		if b := &s.bands[i]; b.img != nil {
			b.img.Destroy()
			b.img = nil
		}
	}
	return nil
}

// Hide unmaps the bands and keeps them for the next Apply.
func (s *Soft) Hide() error {
	s.sibling = 0
	for i := range s.bands {
		s.unmap(&s.bands[i])
	}
	return nil
}

// Release destroys the band windows and bitmaps.
func (s *Soft) Release() error {
	if s.conn == nil {
		return nil
	}
	conn := s.conn.XUtil.Conn()
	for i := range s.bands {
		b := &s.bands[i]
		if b.img != nil {
			b.img.Destroy()
			b.img = nil
		}
		if b.win != 0 {
			xproto.DestroyWindow(conn, b.win)
			b.win = 0
		}
		b.mapped = false
	}
	s.created = false
	s.sibling = 0
	return nil
}

func (s *Soft) ensureWindows() error {
	if s.created {
		return nil
	}
	for i := range s.bands {
		win, err := s.createOverrideRedirectWindow()
		if err != nil {
			s.Release()
			return fmt.Errorf("failed to create shadow window: %w", err)
		}
		s.bands[i].win = win
	}
	s.created = true
	return nil
}

// createOverrideRedirectWindow creates a band window that bypasses the
// window manager and never takes input.
func (s *Soft) createOverrideRedirectWindow() (xproto.Window, error) {
	conn := s.conn.XUtil.Conn()
	screen := s.conn.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	// Value list order follows the bit positions of the mask (low to high).
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		s.conn.Root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		[]uint32{s.params.Backdrop, 1},
	).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}

// paint renders the band at r into a fresh bitmap and installs it as the
// window background.
func (s *Soft) paint(b *band, r, frame geom.Rect) error {
	if b.img != nil {
		b.img.Destroy()
	}
	img := xgraphics.New(s.conn.XUtil, image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			a := Alpha(geom.Point{X: r.X + x, Y: r.Y + y}, frame, s.params)
			c := Blend(s.params.Color, s.params.Backdrop, a)
			img.SetBGRA(x, y, xgraphics.BGRA{
				B: uint8(c),
				G: uint8(c >> 8),
				R: uint8(c >> 16),
				A: 0xff,
			})
		}
	}
	if err := img.XSurfaceSet(b.win); err != nil {
		img.Destroy()
		b.img = nil
		return fmt.Errorf("failed to attach shadow bitmap: %w", err)
	}
	img.XDraw()
	img.XPaint(b.win)
	b.img = img
	return nil
}

func (s *Soft) place(b *band, r geom.Rect) {
	conn := s.conn.XUtil.Conn()
	if s.sibling == 0 {
		s.sibling = s.topLevel()
	}
	mask, values := placement(r, s.sibling)
	xproto.ConfigureWindow(conn, b.win, mask, values)
	if !b.mapped {
		xproto.MapWindow(conn, b.win)
		b.mapped = true
	}
}

// placement returns the configure request that moves a band to r and stacks
// it directly below sibling. A zero sibling leaves the stacking order alone.
func placement(r geom.Rect, sibling xproto.Window) (uint16, []uint32) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(r.X), uint32(r.Y), uint32(r.Width), uint32(r.Height)}
	if sibling != 0 {
		mask |= xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode
		values = append(values, uint32(sibling), xproto.StackModeBelow)
	}
	return mask, values
}

// topLevel returns the root child holding the frame. A reparenting window
// manager puts the frame inside its own decoration window, and bands can
// only be stacked against a sibling.
func (s *Soft) topLevel() xproto.Window {
	conn := s.conn.XUtil.Conn()
	win := s.frame
	for {
		tree, err := xproto.QueryTree(conn, win).Reply()
		if err != nil || tree.Parent == 0 || tree.Parent == tree.Root {
			return win
		}
		win = tree.Parent
	}
}

func (s *Soft) unmap(b *band) {
	if b.win == 0 || !b.mapped {
		return
	}
	xproto.UnmapWindow(s.conn.XUtil.Conn(), b.win)
	b.mapped = false
}
