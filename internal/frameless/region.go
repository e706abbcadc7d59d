package frameless

import "github.com/1broseidon/frameless/internal/geom"

// RegionKind classifies a window-local pointer position.
type RegionKind int

const (
	RegionNone RegionKind = iota
	RegionLeft
	RegionRight
	RegionTop
	RegionBottom
	RegionTopLeft
	RegionTopRight
	RegionBottomLeft
	RegionBottomRight
	RegionTitleBar
)

// String returns the string representation of the region
func (r RegionKind) String() string {
	switch r {
	case RegionNone:
		return "none"
	case RegionLeft:
		return "left"
	case RegionRight:
		return "right"
	case RegionTop:
		return "top"
	case RegionBottom:
		return "bottom"
	case RegionTopLeft:
		return "top-left"
	case RegionTopRight:
		return "top-right"
	case RegionBottomLeft:
		return "bottom-left"
	case RegionBottomRight:
		return "bottom-right"
	case RegionTitleBar:
		return "title-bar"
	default:
		return "unknown"
	}
}

// IsResize reports whether r is one of the eight resize directions.
func (r RegionKind) IsResize() bool {
	return r >= RegionLeft && r <= RegionBottomRight
}

// Classify maps a window-local position to the region under it.
//
// A maximized window never resizes. The title bar wins over the border bands,
// and a position near two perpendicular edges resolves to the corner.
func Classify(pos geom.Point, width, height int, titleBar geom.Rect, border int, maximized bool) RegionKind {
	if maximized {
		return RegionNone
	}
	if titleBar.Contains(pos) {
		return RegionTitleBar
	}

	onLeft := pos.X <= border
	onRight := pos.X >= width-border
	onTop := pos.Y <= border
	onBottom := pos.Y >= height-border

	switch {
	case onTop && onLeft:
		return RegionTopLeft
	case onTop && onRight:
		return RegionTopRight
	case onBottom && onLeft:
		return RegionBottomLeft
	case onBottom && onRight:
		return RegionBottomRight
	case onLeft:
		return RegionLeft
	case onRight:
		return RegionRight
	case onTop:
		return RegionTop
	case onBottom:
		return RegionBottom
	default:
		return RegionNone
	}
}

// resizeCandidate returns frame with the edges implied by region moved to the
// screen position p.
func resizeCandidate(frame geom.Rect, region RegionKind, p geom.Point) geom.Rect {
	next := frame
	switch region {
	case RegionLeft:
		next.SetLeft(p.X)
	case RegionRight:
		next.SetRight(p.X)
	case RegionTop:
		next.SetTop(p.Y)
	case RegionBottom:
		next.SetBottom(p.Y)
	case RegionTopLeft:
		next.SetTop(p.Y)
		next.SetLeft(p.X)
	case RegionTopRight:
		next.SetTop(p.Y)
		next.SetRight(p.X)
	case RegionBottomLeft:
		next.SetBottom(p.Y)
		next.SetLeft(p.X)
	case RegionBottomRight:
		next.SetBottom(p.Y)
		next.SetRight(p.X)
	}
	return next
}
