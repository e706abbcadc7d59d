//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
)

// Theme holds the chrome colours as 0xRRGGBB pixels and the core font name.
type Theme struct {
	TitleBackground uint32
	TitleForeground uint32
	ButtonHover     uint32
	CloseHover      uint32
	Font            string
}

// ThemeFromConfig reads the title bar section.
func ThemeFromConfig(cfg *config.Config) Theme {
	return Theme{
		TitleBackground: uint32(cfg.TitleBar.Background),
		TitleForeground: uint32(cfg.TitleBar.Foreground),
		ButtonHover:     uint32(cfg.TitleBar.ButtonHover),
		CloseHover:      uint32(cfg.TitleBar.CloseHover),
		Font:            cfg.TitleBar.Font,
	}
}

// Painter draws the chrome and the label widget with core X requests. Pixel
// values assume a TrueColor 24-bit visual.
type Painter struct {
	conn      *xgb.Conn
	win       xproto.Window
	gc        xproto.Gcontext
	font      xproto.Font
	ascent    int
	descent   int
	charWidth int
	theme     Theme
}

// NewPainter opens the theme font and a graphics context on win.
func NewPainter(conn *xgb.Conn, win xproto.Window, theme Theme) (*Painter, error) {
	p := &Painter{conn: conn, win: win, theme: theme}
	if err := p.openFont(theme.Font); err != nil {
		return nil, err
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.CloseFont(conn, p.font)
		return nil, fmt.Errorf("failed to allocate graphics context: %w", err)
	}
	// Value list order follows the bit positions of the mask (low to high).
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(win),
		xproto.GcForeground|xproto.GcBackground|xproto.GcLineWidth|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{theme.TitleForeground, theme.TitleBackground, 1, uint32(p.font), 0},
	).Check(); err != nil {
		xproto.CloseFont(conn, p.font)
		return nil, fmt.Errorf("failed to create graphics context: %w", err)
	}
	p.gc = gc
	return p, nil
}

func (p *Painter) openFont(name string) error {
	font, err := xproto.NewFontId(p.conn)
	if err != nil {
		return fmt.Errorf("failed to allocate font id: %w", err)
	}
	if err := xproto.OpenFontChecked(p.conn, font, uint16(len(name)), name).Check(); err != nil {
		return fmt.Errorf("failed to open font %q: %w", name, err)
	}
	info, err := xproto.QueryFont(p.conn, xproto.Fontable(font)).Reply()
	if err != nil {
		xproto.CloseFont(p.conn, font)
		return fmt.Errorf("failed to query font %q: %w", name, err)
	}
	p.font = font
	p.ascent = int(info.FontAscent)
	p.descent = int(info.FontDescent)
	p.charWidth = max(int(info.MaxBounds.CharacterWidth), 1)
	return nil
}

// SetTheme switches colours, and the font when it changed.
func (p *Painter) SetTheme(theme Theme) error {
	if theme.Font != p.theme.Font {
		old := p.font
		if err := p.openFont(theme.Font); err != nil {
			return err
		}
		xproto.ChangeGC(p.conn, p.gc, xproto.GcFont, []uint32{uint32(p.font)})
		xproto.CloseFont(p.conn, old)
	}
	p.theme = theme
	return nil
}

// Close frees the server-side resources.
func (p *Painter) Close() {
	xproto.FreeGC(p.conn, p.gc)
	xproto.CloseFont(p.conn, p.font)
}

func (p *Painter) colors(fg, bg uint32) {
	xproto.ChangeGC(p.conn, p.gc, xproto.GcForeground|xproto.GcBackground, []uint32{fg, bg})
}

func (p *Painter) fill(r geom.Rect, pixel uint32) {
	if r.Empty() {
		return
	}
	p.colors(pixel, pixel)
	xproto.PolyFillRectangle(p.conn, xproto.Drawable(p.win), p.gc, []xproto.Rectangle{rectangle(r)})
}

// text draws s vertically centred in r, starting at r.X or centred when
// center is set.
func (p *Painter) text(s string, r geom.Rect, fg, bg uint32, center bool) {
	s = elide(latin1(s), r.Width/p.charWidth)
	if s == "" {
		return
	}
	x := r.X
	if center {
		x += (r.Width - len(s)*p.charWidth) / 2
	}
	baseline := r.Y + (r.Height+p.ascent-p.descent)/2
	p.colors(fg, bg)
	xproto.ImageText8(p.conn, byte(len(s)), xproto.Drawable(p.win), p.gc, int16(x), int16(baseline), s)
}

// Paint redraws the whole window for a frame width by height.
func (p *Painter) Paint(ctrl *frameless.Controller, width, height int) {
	t := p.theme
	// The resize border takes the title bar colour.
	p.fill(geom.Rect{Width: width, Height: height}, t.TitleBackground)

	bar := ctrl.TitleBarRect()
	tb := ctrl.TitleBar()
	origin := bar.Origin()

	for _, b := range tb.Buttons() {
		r := b.Bounds.Translate(origin)
		bg := t.TitleBackground
		if b.Hovered || b.Pressed {
			bg = t.ButtonHover
			if b.Kind == frameless.ButtonClose {
				bg = t.CloseHover
			}
			p.fill(r, bg)
		}
		p.colors(t.TitleForeground, bg)
		if segs := glyphSegments(b.Glyph, r); len(segs) > 0 {
			xproto.PolySegment(p.conn, xproto.Drawable(p.win), p.gc, segs)
		}
	}

	p.text(tb.Title(), tb.Label().Translate(origin), t.TitleForeground, t.TitleBackground, false)

	switch w := ctrl.CentralWidget().(type) {
	case *Label:
		p.fill(w.Bounds(), w.Background)
		p.text(w.Text, w.Bounds(), w.Foreground, w.Background, true)
	default:
		p.fill(ctrl.ContentRect(), t.TitleBackground)
	}
}

func rectangle(r geom.Rect) xproto.Rectangle {
	return xproto.Rectangle{
		X:      int16(r.X),
		Y:      int16(r.Y),
		Width:  uint16(r.Width),
		Height: uint16(r.Height),
	}
}
