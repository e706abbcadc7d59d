package frameless

// CursorShape is the pointer glyph the host should show over the window.
type CursorShape int

const (
	CursorArrow CursorShape = iota
	CursorSizeHorizontal
	CursorSizeVertical
	// CursorSizeFDiag runs top-left to bottom-right.
	CursorSizeFDiag
	// CursorSizeBDiag runs top-right to bottom-left.
	CursorSizeBDiag
)

func (c CursorShape) String() string {
	switch c {
	case CursorArrow:
		return "arrow"
	case CursorSizeHorizontal:
		return "size-hor"
	case CursorSizeVertical:
		return "size-ver"
	case CursorSizeFDiag:
		return "size-fdiag"
	case CursorSizeBDiag:
		return "size-bdiag"
	default:
		return "unknown"
	}
}

// CursorFor returns the glyph for hovering over region.
func CursorFor(region RegionKind) CursorShape {
	switch region {
	case RegionLeft, RegionRight:
		return CursorSizeHorizontal
	case RegionTop, RegionBottom:
		return CursorSizeVertical
	case RegionTopLeft, RegionBottomRight:
		return CursorSizeFDiag
	case RegionTopRight, RegionBottomLeft:
		return CursorSizeBDiag
	default:
		return CursorArrow
	}
}
