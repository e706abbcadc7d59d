package frameless

import (
	"testing"

	"github.com/1broseidon/frameless/internal/geom"
)

func TestTitleBarDefaultLayout(t *testing.T) {
	tb := NewTitleBar(nil, nil)
	tb.SetWidth(400)

	if got := tb.ButtonKinds(); len(got) != 3 || got[0] != ButtonMinimize || got[2] != ButtonClose {
		t.Fatalf("ButtonKinds() = %v", got)
	}
	want := map[ButtonKind]geom.Rect{
		ButtonMinimize: {X: 305, Y: 0, Width: 30, Height: 30},
		ButtonMaximize: {X: 335, Y: 0, Width: 30, Height: 30},
		ButtonClose:    {X: 365, Y: 0, Width: 30, Height: 30},
	}
	for kind, r := range want {
		b, _ := tb.Button(kind)
		if b.Bounds != r {
			t.Errorf("%s bounds = %+v, want %+v", kind, b.Bounds, r)
		}
	}
	if got := tb.Label(); got != (geom.Rect{X: 5, Y: 0, Width: 300, Height: 30}) {
		t.Fatalf("label = %+v", got)
	}

	tb.SetHeight(40)
	if b, _ := tb.Button(ButtonClose); b.Bounds.Height != 40 {
		t.Fatalf("button height = %d after SetHeight(40)", b.Bounds.Height)
	}
}

func TestTitleBarNarrowLayoutClampsLabel(t *testing.T) {
	tb := NewTitleBar(nil, DefaultChrome{ButtonWidth: 20})
	tb.SetWidth(50)
	if tb.Label().Width != 0 {
		t.Fatalf("label width = %d, want 0", tb.Label().Width)
	}
}

type reversedChrome struct{}

func (reversedChrome) InitializeButtons(tb *TitleBar) {
	tb.AddButton(ButtonClose)
}

func (reversedChrome) SetupLayout(tb *TitleBar, width int) {
	tb.SetButtonBounds(ButtonClose, geom.Rect{X: 0, Y: 0, Width: 20, Height: tb.Height()})
	tb.SetLabelBounds(geom.Rect{X: 20, Y: 0, Width: width - 20, Height: tb.Height()})
}

func TestTitleBarCustomChrome(t *testing.T) {
	tb := NewTitleBar(nil, reversedChrome{})
	tb.SetWidth(300)

	if got := tb.ButtonKinds(); len(got) != 1 || got[0] != ButtonClose {
		t.Fatalf("ButtonKinds() = %v, want [close]", got)
	}
	closed := false
	tb.OnCloseRequested = func() { closed = true }
	tb.HandlePointer(PointerEvent{Kind: PointerPress, Button: ButtonPrimary, Local: geom.Point{X: 5, Y: 5}})
	tb.HandlePointer(PointerEvent{Kind: PointerRelease, Button: ButtonPrimary, Local: geom.Point{X: 5, Y: 5}})
	if !closed {
		t.Fatal("close not requested")
	}
	// Missing buttons are ignored.
	tb.UpdateButtonStates()
	if _, ok := tb.Button(ButtonMaximize); ok {
		t.Fatal("unexpected maximize button")
	}
}

func TestTitleBarOwnDrag(t *testing.T) {
	host := newFakeHost(geom.Rect{X: 50, Y: 50, Width: 800, Height: 600})
	tb := NewTitleBar(host, nil)
	tb.SetWidth(800)

	consumed := tb.HandlePointer(PointerEvent{
		Kind:   PointerPress,
		Button: ButtonPrimary,
		Local:  geom.Point{X: 50, Y: 10},
		Global: geom.Point{X: 100, Y: 100},
	})
	if !consumed || !tb.Dragging() {
		t.Fatal("press did not start a drag")
	}
	tb.HandlePointer(PointerEvent{
		Kind:    PointerMove,
		Buttons: MaskPrimary,
		Global:  geom.Point{X: 130, Y: 140},
	})
	if got := host.frame.Origin(); got != (geom.Point{X: 80, Y: 90}) {
		t.Fatalf("origin = %+v, want (80,90)", got)
	}
	tb.HandlePointer(PointerEvent{Kind: PointerRelease, Button: ButtonPrimary, Global: geom.Point{X: 130, Y: 140}})
	if tb.Dragging() {
		t.Fatal("still dragging after release")
	}

	tb.SetDragEnabled(false)
	if tb.HandlePointer(PointerEvent{Kind: PointerPress, Button: ButtonPrimary, Local: geom.Point{X: 50, Y: 10}, Time: 5e9}) {
		t.Fatal("press consumed with drag disabled")
	}
}

func TestTitleBarHoverAndTooltips(t *testing.T) {
	host := newFakeHost(geom.Rect{Width: 400, Height: 300})
	tb := NewTitleBar(host, nil)
	tb.SetWidth(400)

	b, _ := tb.Button(ButtonMaximize)
	if b.Tooltip != "Maximize" {
		t.Fatalf("tooltip = %q, want Maximize", b.Tooltip)
	}
	if !tb.HandlePointer(PointerEvent{Kind: PointerMove, Local: geom.Point{X: 340, Y: 10}}) {
		t.Fatal("hover change not reported")
	}
	if b, _ := tb.Button(ButtonMaximize); !b.Hovered {
		t.Fatal("maximize not hovered")
	}
	if tb.HandlePointer(PointerEvent{Kind: PointerMove, Local: geom.Point{X: 341, Y: 11}}) {
		t.Fatal("unchanged hover reported as a change")
	}
	tb.HandlePointer(PointerEvent{Kind: PointerLeave})
	for _, b := range tb.Buttons() {
		if b.Hovered {
			t.Fatalf("%s still hovered after leave", b.Kind)
		}
	}

	host.maximized = true
	tb.UpdateButtonStates()
	if b, _ := tb.Button(ButtonMaximize); b.Glyph != GlyphRestore || b.Tooltip != "Restore" {
		t.Fatalf("maximize button = %+v while maximized", b)
	}
}

func TestTitleBarIgnoresSecondaryButton(t *testing.T) {
	tb := NewTitleBar(nil, nil)
	tb.SetWidth(400)
	called := false
	tb.OnCloseRequested = func() { called = true }

	ev := PointerEvent{Kind: PointerPress, Button: ButtonSecondary, Local: geom.Point{X: 370, Y: 10}}
	if tb.HandlePointer(ev) {
		t.Fatal("secondary press consumed")
	}
	ev.Kind = PointerRelease
	tb.HandlePointer(ev)
	if called {
		t.Fatal("secondary click closed the window")
	}
}
