// Package preview renders a frameless window and its drop shadow to an
// image without a display connection. The chrome is laid out by the same
// controller the live window uses.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
	"github.com/1broseidon/frameless/internal/shadow"
)

// Options selects what to draw.
type Options struct {
	// Maximized draws the restore glyph and no shadow.
	Maximized bool
	// Hover names a title bar button to draw highlighted: minimize,
	// maximize or close.
	Hover string
	// Scale enlarges the result by an integer factor.
	Scale int
}

// Render draws the window described by cfg over the shadow backdrop.
func Render(cfg *config.Config, opts Options) (*image.NRGBA, error) {
	params := shadow.FromConfig(cfg.Shadow)
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return nil, fmt.Errorf("window size %dx%d is empty", cfg.Window.Width, cfg.Window.Height)
	}

	margin := 0
	if hasShadow(cfg, params, opts.Maximized) {
		margin = Margin(params)
	}
	frame := geom.Rect{X: margin, Y: margin, Width: cfg.Window.Width, Height: cfg.Window.Height}

	host := &staticHost{geometry: frame, maximized: opts.Maximized}
	ctrl := frameless.NewController(host, frameless.Options{
		ResizeBorder:   cfg.ResizeBorder,
		TitleBarHeight: cfg.TitleBar.Height,
	})
	ctrl.SetWindowTitle(cfg.Window.Title)
	if opts.Hover != "" {
		if err := hover(ctrl, frame, opts.Hover); err != nil {
			return nil, err
		}
	}

	canvas := imaging.New(frame.Width+2*margin, frame.Height+2*margin, rgb(params.Backdrop))
	if margin > 0 {
		drawShadow(canvas, frame, params)
	}
	canvas = drawWindow(canvas, ctrl, cfg, frame.Origin())

	if opts.Scale > 1 {
		b := canvas.Bounds()
		canvas = imaging.Resize(canvas, b.Dx()*opts.Scale, b.Dy()*opts.Scale, imaging.NearestNeighbor)
	}
	return canvas, nil
}

// Save writes img to path. The extension picks the encoding.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

// Margin is how far past the frame the shadow can reach on any side.
func Margin(p shadow.Params) int {
	return max(p.Radius, 0) + max(abs(p.Offset.X), abs(p.Offset.Y))
}

func hasShadow(cfg *config.Config, p shadow.Params, maximized bool) bool {
	return !maximized && cfg.Shadow.Strategy != shadow.StrategyNone && p.Radius > 0 && p.Alpha > 0
}

// hover moves a synthetic pointer over the named button so the title bar
// marks it hovered.
func hover(ctrl *frameless.Controller, frame geom.Rect, name string) error {
	bar := ctrl.TitleBarRect()
	for _, b := range ctrl.TitleBar().Buttons() {
		if b.Kind.String() != name {
			continue
		}
		local := geom.Point{
			X: bar.X + b.Bounds.X + b.Bounds.Width/2,
			Y: bar.Y + b.Bounds.Y + b.Bounds.Height/2,
		}
		ctrl.HandlePointer(frameless.PointerEvent{
			Kind:   frameless.PointerMove,
			Local:  local,
			Global: local.Add(frame.Origin()),
		})
		return nil
	}
	return fmt.Errorf("unknown title bar button %q", name)
}

func drawShadow(canvas *image.NRGBA, frame geom.Rect, p shadow.Params) {
	area, _ := shadow.Layout(frame, p)
	b := canvas.Bounds()
	area = area.Intersect(geom.Rect{Width: b.Dx(), Height: b.Dy()})
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			pt := geom.Point{X: x, Y: y}
			if frame.Contains(pt) {
				continue
			}
			a := shadow.Alpha(pt, frame, p)
			canvas.SetNRGBA(x, y, rgb(shadow.Blend(p.Color, p.Backdrop, a)))
		}
	}
}

// drawWindow paints the frame at origin. The resize border shares the title
// bar colour.
func drawWindow(canvas *image.NRGBA, ctrl *frameless.Controller, cfg *config.Config, origin geom.Point) *image.NRGBA {
	tbCfg := cfg.TitleBar
	canvas = fill(canvas, geom.Rect{Width: cfg.Window.Width, Height: cfg.Window.Height}.Translate(origin), uint32(tbCfg.Background))

	bar := ctrl.TitleBarRect().Translate(origin)
	tb := ctrl.TitleBar()
	for _, b := range tb.Buttons() {
		r := b.Bounds.Translate(bar.Origin())
		if b.Hovered || b.Pressed {
			bg := tbCfg.ButtonHover
			if b.Kind == frameless.ButtonClose {
				bg = tbCfg.CloseHover
			}
			canvas = fill(canvas, r, uint32(bg))
		}
		for _, l := range frameless.GlyphLines(b.Glyph, r) {
			stroke(canvas, l, rgb(uint32(tbCfg.Foreground)))
		}
	}
	drawText(canvas, tb.Title(), tb.Label().Translate(bar.Origin()), uint32(tbCfg.Foreground), false)

	content := ctrl.ContentRect().Translate(origin)
	canvas = fill(canvas, content, uint32(cfg.Content.Background))
	drawText(canvas, cfg.Content.Text, content, uint32(cfg.Content.Foreground), true)
	return canvas
}

func fill(canvas *image.NRGBA, r geom.Rect, pixel uint32) *image.NRGBA {
	if r.Empty() {
		return canvas
	}
	return imaging.Paste(canvas, imaging.New(r.Width, r.Height, rgb(pixel)), image.Pt(r.X, r.Y))
}

// stroke draws l one pixel wide. Glyph strokes are horizontal, vertical or
// diagonal at 45 degrees, so stepping each axis by its sign covers them.
func stroke(canvas *image.NRGBA, l frameless.Line, c color.NRGBA) {
	dx, dy := sign(l.To.X-l.From.X), sign(l.To.Y-l.From.Y)
	p := l.From
	for {
		canvas.SetNRGBA(p.X, p.Y, c)
		if p == l.To {
			return
		}
		if p.X != l.To.X {
			p.X += dx
		}
		if p.Y != l.To.Y {
			p.Y += dy
		}
	}
}

var face = basicfont.Face7x13

// drawText draws s vertically centred in r, and horizontally centred when
// center is set. Characters that do not fit are dropped from the end.
func drawText(canvas *image.NRGBA, s string, r geom.Rect, fg uint32, center bool) {
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(rgb(fg)),
		Face: face,
	}
	runes := []rune(s)
	for len(runes) > 0 && d.MeasureString(string(runes)).Ceil() > r.Width {
		runes = runes[:len(runes)-1]
	}
	if len(runes) == 0 {
		return
	}
	s = string(runes)

	x := r.X
	if center {
		x += (r.Width - d.MeasureString(s).Ceil()) / 2
	}
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	d.Dot = fixed.P(x, r.Y+(r.Height+ascent-descent)/2)
	d.DrawString(s)
}

func rgb(pixel uint32) color.NRGBA {
	return color.NRGBA{R: uint8(pixel >> 16), G: uint8(pixel >> 8), B: uint8(pixel), A: 0xff}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
