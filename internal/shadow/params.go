// Package shadow draws the drop shadow around a frameless X11 window.
//
// Composited hands the shadow to the compositing manager. Soft paints it
// into four override-redirect windows around the frame, for desktops
// without a compositor.
package shadow

import (
	"fmt"
	"math"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/geom"
)

// Params describes the shadow appearance.
type Params struct {
	// Radius is the blur radius in pixels; the shadow extends this far past
	// the frame.
	Radius int
	// Color is 0xRRGGBB.
	Color uint32
	// Alpha is the peak opacity, 0-255.
	Alpha  uint8
	Offset geom.Point
	// Backdrop is the 0xRRGGBB colour Soft blends over, since core X windows
	// cannot be translucent without a compositor.
	Backdrop uint32
}

// DefaultParams returns a 20px black shadow at alpha 80 with no offset.
func DefaultParams() Params {
	return Params{
		Radius:   20,
		Color:    0x000000,
		Alpha:    80,
		Backdrop: 0x3b4252,
	}
}

// FromConfig converts the shadow section of the configuration.
func FromConfig(c config.ShadowConfig) Params {
	return Params{
		Radius:   c.BlurRadius,
		Color:    uint32(c.Color),
		Alpha:    uint8(c.Alpha),
		Offset:   geom.Point{X: c.OffsetX, Y: c.OffsetY},
		Backdrop: uint32(c.Backdrop),
	}
}

// Validate checks the numeric ranges.
func (p Params) Validate() error {
	if p.Radius < 0 || p.Radius > 200 {
		return fmt.Errorf("shadow radius %d out of range 0-200", p.Radius)
	}
	if p.Color > 0xffffff {
		return fmt.Errorf("shadow color %#x is not 0xRRGGBB", p.Color)
	}
	if p.Backdrop > 0xffffff {
		return fmt.Errorf("shadow backdrop %#x is not 0xRRGGBB", p.Backdrop)
	}
	return nil
}

// sigma follows the usual box-shadow convention: half the blur radius.
func (p Params) sigma() float64 {
	if p.Radius <= 0 {
		return 0
	}
	return float64(p.Radius) * 0.5
}

// Layout returns the rectangle the shadow covers and the four bands of it
// that lie outside frame (top, bottom, left, right). Bands may be empty.
func Layout(frame geom.Rect, p Params) (geom.Rect, [4]geom.Rect) {
	r := max(p.Radius, 0)
	box := frame.Translate(p.Offset)
	area := geom.Rect{X: box.X - r, Y: box.Y - r, Width: box.Width + 2*r, Height: box.Height + 2*r}

	// Bounding box of the shadow and the frame.
	x1 := min(area.X, frame.X)
	y1 := min(area.Y, frame.Y)
	x2 := max(area.X+area.Width, frame.X+frame.Width)
	y2 := max(area.Y+area.Height, frame.Y+frame.Height)
	fx2 := frame.X + frame.Width
	fy2 := frame.Y + frame.Height

	bands := [4]geom.Rect{
		{X: x1, Y: y1, Width: x2 - x1, Height: frame.Y - y1},
		{X: x1, Y: fy2, Width: x2 - x1, Height: y2 - fy2},
		{X: x1, Y: frame.Y, Width: frame.X - x1, Height: frame.Height},
		{X: fx2, Y: frame.Y, Width: x2 - fx2, Height: frame.Height},
	}
	return area, bands
}

// Coverage returns how much of a Gaussian-blurred box covers the pixel at p,
// from 0 to 1. The blur is separable, so the result is the product of the
// horizontal and vertical coverage.
func Coverage(p geom.Point, box geom.Rect, sigma float64) float64 {
	return axisCoverage(float64(p.X)+0.5, float64(box.X), float64(box.X+box.Width), sigma) *
		axisCoverage(float64(p.Y)+0.5, float64(box.Y), float64(box.Y+box.Height), sigma)
}

func axisCoverage(v, lo, hi, sigma float64) float64 {
	if sigma <= 0 {
		if v >= lo && v < hi {
			return 1
		}
		return 0
	}
	s := sigma * math.Sqrt2
	return 0.5 * (math.Erf((v-lo)/s) - math.Erf((v-hi)/s))
}

// Alpha returns the shadow opacity at screen position p around frame.
func Alpha(p geom.Point, frame geom.Rect, params Params) uint8 {
	c := Coverage(p, frame.Translate(params.Offset), params.sigma())
	return uint8(math.Round(c * float64(params.Alpha)))
}

// Blend composites color over backdrop with opacity alpha and returns
// 0xRRGGBB.
func Blend(color, backdrop uint32, alpha uint8) uint32 {
	a := uint32(alpha)
	mix := func(shift uint) uint32 {
		fg := (color >> shift) & 0xff
		bg := (backdrop >> shift) & 0xff
		return ((fg*a + bg*(255-a) + 127) / 255) << shift
	}
	return mix(16) | mix(8) | mix(0)
}
