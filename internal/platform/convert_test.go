package platform

import (
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"

	"github.com/1broseidon/frameless/internal/frameless"
	"github.com/1broseidon/frameless/internal/geom"
	"github.com/1broseidon/frameless/internal/x11"
)

func TestPointerEvent(t *testing.T) {
	ev := pointerEvent(frameless.PointerPress, xproto.ButtonIndex1, xproto.ButtonMask1|xproto.ButtonMask3, 10, 20, 110, 220, 1500)

	if ev.Kind != frameless.PointerPress || ev.Button != frameless.ButtonPrimary {
		t.Fatalf("unexpected kind/button: %+v", ev)
	}
	if !ev.Buttons.Has(frameless.ButtonPrimary) || !ev.Buttons.Has(frameless.ButtonSecondary) || ev.Buttons.Has(frameless.ButtonMiddle) {
		t.Fatalf("unexpected button mask %b", ev.Buttons)
	}
	if ev.Local != (geom.Point{X: 10, Y: 20}) || ev.Global != (geom.Point{X: 110, Y: 220}) {
		t.Fatalf("unexpected positions local=%v global=%v", ev.Local, ev.Global)
	}
	if ev.Time != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s, got %v", ev.Time)
	}
}

func TestButtonDetailRoundTrip(t *testing.T) {
	for _, b := range []frameless.Button{frameless.ButtonPrimary, frameless.ButtonMiddle, frameless.ButtonSecondary} {
		if got := buttonFromDetail(xproto.Button(buttonDetail(b))); got != b {
			t.Errorf("button %v came back as %v", b, got)
		}
	}
	if got := buttonFromDetail(4); got != frameless.ButtonNone {
		t.Errorf("wheel button should map to none, got %v", got)
	}
}

func TestMoveResizeDirection(t *testing.T) {
	tests := []struct {
		region frameless.RegionKind
		want   x11.MoveResizeDirection
		ok     bool
	}{
		{frameless.RegionTopLeft, x11.MoveResizeSizeTopLeft, true},
		{frameless.RegionTop, x11.MoveResizeSizeTop, true},
		{frameless.RegionTopRight, x11.MoveResizeSizeTopRight, true},
		{frameless.RegionRight, x11.MoveResizeSizeRight, true},
		{frameless.RegionBottomRight, x11.MoveResizeSizeBottomRight, true},
		{frameless.RegionBottom, x11.MoveResizeSizeBottom, true},
		{frameless.RegionBottomLeft, x11.MoveResizeSizeBottomLeft, true},
		{frameless.RegionLeft, x11.MoveResizeSizeLeft, true},
		{frameless.RegionTitleBar, x11.MoveResizeMove, true},
		{frameless.RegionNone, 0, false},
	}
	for _, tt := range tests {
		got, ok := moveResizeDirection(tt.region)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("%s: got %v,%v want %v,%v", tt.region, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCursorGlyph(t *testing.T) {
	tests := map[frameless.CursorShape]uint16{
		frameless.CursorArrow:          xcursor.LeftPtr,
		frameless.CursorSizeHorizontal: xcursor.SBHDoubleArrow,
		frameless.CursorSizeVertical:   xcursor.SBVDoubleArrow,
		frameless.CursorSizeFDiag:      xcursor.BottomRightCorner,
		frameless.CursorSizeBDiag:      xcursor.BottomLeftCorner,
	}
	for shape, want := range tests {
		if got := cursorGlyph(shape); got != want {
			t.Errorf("%s: got glyph %d, want %d", shape, got, want)
		}
	}
}

func TestGlyphSegments(t *testing.T) {
	r := geom.Rect{X: 100, Y: 0, Width: 46, Height: 32}
	tests := []struct {
		glyph frameless.Glyph
		count int
	}{
		{frameless.GlyphMinimize, 1},
		{frameless.GlyphMaximize, 4},
		{frameless.GlyphRestore, 7},
		{frameless.GlyphClose, 2},
	}
	for _, tt := range tests {
		segs := glyphSegments(tt.glyph, r)
		if len(segs) != tt.count {
			t.Fatalf("glyph %d: expected %d segments, got %d", tt.glyph, tt.count, len(segs))
		}
		for _, s := range segs {
			for _, p := range []geom.Point{{X: int(s.X1), Y: int(s.Y1)}, {X: int(s.X2), Y: int(s.Y2)}} {
				if !r.Contains(p) {
					t.Fatalf("glyph %d: point %v outside %v", tt.glyph, p, r)
				}
			}
		}
	}
	if segs := glyphSegments(frameless.Glyph(99), r); segs != nil {
		t.Fatalf("unknown glyph should draw nothing, got %v", segs)
	}
}

func TestLatin1(t *testing.T) {
	if got := latin1("café ☃"); got != "caf\xe9 ?" {
		t.Fatalf("latin1 = %q", got)
	}
}

func TestElide(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"hello", -2, ""},
	}
	for _, tt := range tests {
		if got := elide(tt.in, tt.max); got != tt.want {
			t.Errorf("elide(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	if got := elide(string(long), 1000); len(got) != 255 {
		t.Fatalf("expected 255 byte cap, got %d", len(got))
	}
}
