// Package geom holds the screen-space value types shared by the window
// controller and the X11 host.
package geom

// MaxSize is the largest width or height a window may take when no explicit
// maximum is configured.
const MaxSize = 16777215

// Point is a position in pixels.
type Point struct {
	X int
	Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect describes a rectangular region in screen coordinates.
//
// Right and Bottom are inclusive edges: a rect at X=0 with Width=800 has its
// right edge at 799. Edge setters move one edge and keep the opposite edge
// fixed.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width - 1 }
func (r Rect) Bottom() int { return r.Y + r.Height - 1 }

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// MoveTo returns r with its origin at p and its size unchanged.
func (r Rect) MoveTo(p Point) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Intersect returns the overlap of r and o, or an empty Rect.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func (r *Rect) SetLeft(x int) {
	right := r.Right()
	r.X = x
	r.Width = right - x + 1
}

func (r *Rect) SetTop(y int) {
	bottom := r.Bottom()
	r.Y = y
	r.Height = bottom - y + 1
}

func (r *Rect) SetRight(x int) {
	r.Width = x - r.X + 1
}

func (r *Rect) SetBottom(y int) {
	r.Height = y - r.Y + 1
}

// SizeBounds holds the minimum and maximum size a window accepts.
type SizeBounds struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

// DefaultSizeBounds returns bounds with no minimum and the largest maximum.
func DefaultSizeBounds() SizeBounds {
	return SizeBounds{MaxWidth: MaxSize, MaxHeight: MaxSize}
}

// Admits reports whether r has a positive size inside the bounds.
func (b SizeBounds) Admits(r Rect) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return r.Width >= b.MinWidth && r.Width <= b.MaxWidth &&
		r.Height >= b.MinHeight && r.Height <= b.MaxHeight
}
