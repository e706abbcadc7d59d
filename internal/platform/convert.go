package platform

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"

	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
	"github.com/1broseidon/frameless/internal/x11"
)

// pointerEvent converts the fields shared by X button, motion and crossing
// events. X timestamps are milliseconds.
func pointerEvent(kind frameless.EventKind, detail xproto.Button, state uint16, eventX, eventY, rootX, rootY int16, t xproto.Timestamp) frameless.PointerEvent {
	return frameless.PointerEvent{
		Kind:    kind,
		Button:  buttonFromDetail(detail),
		Buttons: buttonMask(state),
		Local:   geom.Point{X: int(eventX), Y: int(eventY)},
		Global:  geom.Point{X: int(rootX), Y: int(rootY)},
		Time:    time.Duration(t) * time.Millisecond,
	}
}

func buttonFromDetail(detail xproto.Button) frameless.Button {
	switch detail {
	case xproto.ButtonIndex1:
		return frameless.ButtonPrimary
	case xproto.ButtonIndex2:
		return frameless.ButtonMiddle
	case xproto.ButtonIndex3:
		return frameless.ButtonSecondary
	default:
		return frameless.ButtonNone
	}
}

// buttonDetail is the inverse of buttonFromDetail.
func buttonDetail(b frameless.Button) uint32 {
	switch b {
	case frameless.ButtonPrimary:
		return xproto.ButtonIndex1
	case frameless.ButtonMiddle:
		return xproto.ButtonIndex2
	case frameless.ButtonSecondary:
		return xproto.ButtonIndex3
	default:
		return 0
	}
}

func buttonMask(state uint16) frameless.ButtonMask {
	var m frameless.ButtonMask
	if state&xproto.ButtonMask1 != 0 {
		m |= frameless.MaskPrimary
	}
	if state&xproto.ButtonMask2 != 0 {
		m |= frameless.MaskMiddle
	}
	if state&xproto.ButtonMask3 != 0 {
		m |= frameless.MaskSecondary
	}
	return m
}

// moveResizeDirection maps a region to the _NET_WM_MOVERESIZE direction.
func moveResizeDirection(region frameless.RegionKind) (x11.MoveResizeDirection, bool) {
	switch region {
	case frameless.RegionTopLeft:
		return x11.MoveResizeSizeTopLeft, true
	case frameless.RegionTop:
		return x11.MoveResizeSizeTop, true
	case frameless.RegionTopRight:
		return x11.MoveResizeSizeTopRight, true
	case frameless.RegionRight:
		return x11.MoveResizeSizeRight, true
	case frameless.RegionBottomRight:
		return x11.MoveResizeSizeBottomRight, true
	case frameless.RegionBottom:
		return x11.MoveResizeSizeBottom, true
	case frameless.RegionBottomLeft:
		return x11.MoveResizeSizeBottomLeft, true
	case frameless.RegionLeft:
		return x11.MoveResizeSizeLeft, true
	case frameless.RegionTitleBar:
		return x11.MoveResizeMove, true
	default:
		return 0, false
	}
}

// cursorGlyph picks the X cursor font glyph for a shape. The core font has
// no diagonal double arrows, so the corner glyphs stand in.
func cursorGlyph(shape frameless.CursorShape) uint16 {
	switch shape {
	case frameless.CursorSizeHorizontal:
		return xcursor.SBHDoubleArrow
	case frameless.CursorSizeVertical:
		return xcursor.SBVDoubleArrow
	case frameless.CursorSizeFDiag:
		return xcursor.BottomRightCorner
	case frameless.CursorSizeBDiag:
		return xcursor.BottomLeftCorner
	default:
		return xcursor.LeftPtr
	}
}

// glyphSegments converts a button icon into X line segments.
func glyphSegments(g frameless.Glyph, r geom.Rect) []xproto.Segment {
	lines := frameless.GlyphLines(g, r)
	if lines == nil {
		return nil
	}
	segs := make([]xproto.Segment, len(lines))
	for i, l := range lines {
		segs[i] = xproto.Segment{X1: int16(l.From.X), Y1: int16(l.From.Y), X2: int16(l.To.X), Y2: int16(l.To.Y)}
	}
	return segs
}

// latin1 maps s onto the 8-bit core font encoding, replacing what does not
// fit with '?'.
func latin1(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return string(out)
}

// elide shortens s to at most maxChars bytes, ending in "..." when cut.
// ImageText8 takes at most 255 bytes.
func elide(s string, maxChars int) string {
	maxChars = min(maxChars, 255)
	if maxChars <= 0 {
		return ""
	}
	if len(s) <= maxChars {
		return s
	}
	if maxChars <= 3 {
		return s[:maxChars]
	}
	return s[:maxChars-3] + "..."
}
