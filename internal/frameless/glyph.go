package frameless

import "github.com/1broseidon/frameless/internal/geom"

// Line is a one-pixel stroke from From to To, both inclusive.
type Line struct {
	From, To geom.Point
}

// GlyphHalfSize is half the side of the square a button glyph fits in.
const GlyphHalfSize = 5

// GlyphLines returns the strokes of a button icon centred in r.
func GlyphLines(g Glyph, r geom.Rect) []Line {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	h := GlyphHalfSize
	line := func(x1, y1, x2, y2 int) Line {
		return Line{From: geom.Point{X: x1, Y: y1}, To: geom.Point{X: x2, Y: y2}}
	}
	square := func(left, top, right, bottom int) []Line {
		return []Line{
			line(left, top, right, top),
			line(right, top, right, bottom),
			line(right, bottom, left, bottom),
			line(left, bottom, left, top),
		}
	}

	switch g {
	case GlyphMinimize:
		return []Line{line(cx-h, cy+h/2, cx+h, cy+h/2)}
	case GlyphMaximize:
		return square(cx-h, cy-h, cx+h, cy+h)
	case GlyphRestore:
		// Front window plus the visible corner of the one behind it.
		const shift = 3
		out := square(cx-h, cy-h+shift, cx+h-shift, cy+h)
		return append(out,
			line(cx-h+shift, cy-h+shift, cx-h+shift, cy-h),
			line(cx-h+shift, cy-h, cx+h, cy-h),
			line(cx+h, cy-h, cx+h, cy+h-shift),
		)
	case GlyphClose:
		return []Line{
			line(cx-h, cy-h, cx+h, cy+h),
			line(cx+h, cy-h, cx-h, cy+h),
		}
	default:
		return nil
	}
}
