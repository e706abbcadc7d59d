package shadow

import (
	"fmt"

	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

// bypassCompositorOff asks the compositor never to unredirect the window.
const bypassCompositorOff = 2

// Composited lets the compositing manager draw the shadow. It publishes a
// 1px client-side frame margin, which compositors treat as a decorated
// window and shadow accordingly.
type Composited struct {
	conn   *x11.Connection
	win    xproto.Window
	margin int
	set    bool
}

var _ frameless.ShadowStrategy = (*Composited)(nil)

// NewComposited returns a native strategy for win.
func NewComposited(conn *x11.Connection, win xproto.Window) *Composited {
	return &Composited{conn: conn, win: win, margin: -1}
}

func (s *Composited) Name() string { return StrategyNative }

// Apply publishes the frame margin. A maximized window gets no margin.
func (s *Composited) Apply(frame frameless.ShadowFrame) error {
	if s.conn == nil {
		return frameless.ErrNotRealized
	}
	margin := 1
	if frame.Maximized {
		margin = 0
	}
	if !s.set {
		if err := xprop.ChangeProp32(s.conn.XUtil, s.win, "_NET_WM_BYPASS_COMPOSITOR", "CARDINAL", bypassCompositorOff); err != nil {
			return fmt.Errorf("failed to set _NET_WM_BYPASS_COMPOSITOR: %w", err)
		}
		s.set = true
	}
	if margin == s.margin {
		return nil
	}
	m := uint(margin)
	if err := xprop.ChangeProp32(s.conn.XUtil, s.win, "_GTK_FRAME_EXTENTS", "CARDINAL", m, m, m, m); err != nil {
		return fmt.Errorf("failed to set _GTK_FRAME_EXTENTS: %w", err)
	}
	s.margin = margin
	return nil
}

// Release removes the frame margin property.
func (s *Composited) Release() error {
	if s.conn == nil || s.margin < 0 {
		return nil
	}
	atom, err := s.conn.Atom("_GTK_FRAME_EXTENTS")
	if err != nil {
		return err
	}
	s.margin = -1
	return xproto.DeletePropertyChecked(s.conn.XUtil.Conn(), s.win, atom).Check()
}
