package frameless

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/1broseidon/frameless/internal/geom"
)

func newTestController(t *testing.T, frame geom.Rect, mutate func(*Options)) (*Controller, *fakeHost, *fakeShadow) {
	t.Helper()
	host := newFakeHost(frame)
	shadow := &fakeShadow{}
	opts := DefaultOptions()
	opts.Shadow = shadow
	if mutate != nil {
		mutate(&opts)
	}
	return NewController(host, opts), host, shadow
}

func TestNewControllerAppliesDefaults(t *testing.T) {
	c, host, shadow := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)

	if host.bounds.MinWidth != 200 || host.bounds.MinHeight != 150 {
		t.Fatalf("size bounds = %+v, want min 200x150", host.bounds)
	}
	if got := c.TitleBar().Height(); got != DefaultTitleBarHeight {
		t.Fatalf("title bar height = %d, want %d", got, DefaultTitleBarHeight)
	}
	if got := c.TitleBar().Title(); got != "Window Title" {
		t.Fatalf("title = %q, want %q", got, "Window Title")
	}
	want := geom.Rect{X: 5, Y: 5, Width: 790, Height: 30}
	if got := c.TitleBarRect(); got != want {
		t.Fatalf("TitleBarRect() = %+v, want %+v", got, want)
	}
	if got := c.TitleBar().Width(); got != 790 {
		t.Fatalf("title bar width = %d, want 790", got)
	}
	if len(shadow.applied) != 1 {
		t.Fatalf("shadow applied %d times on construction, want 1", len(shadow.applied))
	}
	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %s, want idle", c.Phase())
	}
}

func TestControllerRejectsResizeBelowMinimum(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)
	p := &pointer{}

	c.HandlePointer(p.press(geom.Point{X: 2, Y: 300}))
	if c.Session().Region != RegionLeft || c.Phase() != PhaseResizing {
		t.Fatalf("session = %+v, want resizing left", c.Session())
	}
	if host.cursor != CursorSizeHorizontal {
		t.Fatalf("cursor = %s, want size-hor", host.cursor)
	}

	c.HandlePointer(p.drag(geom.Point{X: 750, Y: 300}))
	if host.frame != (geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}) {
		t.Fatalf("frame = %+v, want unchanged", host.frame)
	}
	if host.setCalls != 0 {
		t.Fatalf("SetGeometry called %d times, want 0", host.setCalls)
	}

	c.HandlePointer(p.drag(geom.Point{X: 100, Y: 300}))
	want := geom.Rect{X: 100, Y: 0, Width: 700, Height: 600}
	if host.frame != want {
		t.Fatalf("frame = %+v, want %+v", host.frame, want)
	}
}

func TestControllerResizeRegionFrozenForGesture(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)
	p := &pointer{}

	c.HandlePointer(p.press(geom.Point{X: 798, Y: 300}))
	if c.Session().Region != RegionRight {
		t.Fatalf("region = %s, want right", c.Session().Region)
	}

	// The pointer crosses into the bottom band; only the right edge moves.
	c.HandlePointer(p.drag(geom.Point{X: 700, Y: 598}))
	want := geom.Rect{X: 0, Y: 0, Width: 701, Height: 600}
	if host.frame != want {
		t.Fatalf("frame = %+v, want %+v", host.frame, want)
	}
	if c.Session().Region != RegionRight {
		t.Fatalf("region changed mid-gesture to %s", c.Session().Region)
	}

	c.HandlePointer(p.release(geom.Point{X: 700, Y: 598}))
	if c.Session().Active {
		t.Fatal("session still active after release")
	}
	if host.cursor != CursorArrow {
		t.Fatalf("cursor = %s after release, want arrow", host.cursor)
	}
}

func TestControllerDragMovesByAnchor(t *testing.T) {
	c, host, shadow := newTestController(t, geom.Rect{X: 50, Y: 50, Width: 800, Height: 600}, func(o *Options) {
		o.TitleBarHeight = 60
	})

	c.HandlePointer(PointerEvent{
		Kind:   PointerPress,
		Button: ButtonPrimary,
		Local:  geom.Point{X: 50, Y: 50},
		Global: geom.Point{X: 100, Y: 100},
	})
	if c.Phase() != PhaseDragging {
		t.Fatalf("phase = %s, want dragging", c.Phase())
	}
	if c.Session().Anchor != (geom.Point{X: 50, Y: 50}) {
		t.Fatalf("anchor = %+v, want (50,50)", c.Session().Anchor)
	}

	before := len(shadow.applied)
	c.HandlePointer(dragGlobal(geom.Point{X: 130, Y: 140}, host.frame))
	if got := host.frame.Origin(); got != (geom.Point{X: 80, Y: 90}) {
		t.Fatalf("origin = %+v, want (80,90)", got)
	}
	if host.frame.Width != 800 || host.frame.Height != 600 {
		t.Fatalf("drag changed size to %dx%d", host.frame.Width, host.frame.Height)
	}
	if len(shadow.applied) != before+1 {
		t.Fatalf("shadow refreshed %d times on move, want 1", len(shadow.applied)-before)
	}
}

func TestControllerGeometryInvariantUnderRandomResizes(t *testing.T) {
	regions := map[RegionKind]geom.Point{
		RegionLeft:        {X: 1, Y: 300},
		RegionRight:       {X: 798, Y: 300},
		RegionTop:         {X: 400, Y: 1},
		RegionBottom:      {X: 400, Y: 598},
		RegionTopLeft:     {X: 1, Y: 1},
		RegionTopRight:    {X: 798, Y: 1},
		RegionBottomLeft:  {X: 1, Y: 598},
		RegionBottomRight: {X: 798, Y: 598},
	}
	rng := rand.New(rand.NewSource(7))

	for region, local := range regions {
		c, host, _ := newTestController(t, geom.Rect{X: 500, Y: 400, Width: 800, Height: 600}, func(o *Options) {
			o.Bounds.MaxWidth = 1200
			o.Bounds.MaxHeight = 900
		})
		// Keep the title bar clear of the top corners.
		c.TitleBar().SetHeight(1)
		p := &pointer{origin: host.frame.Origin()}
		c.HandlePointer(p.press(local))
		if c.Session().Region != region {
			t.Fatalf("press at %+v classified %s, want %s", local, c.Session().Region, region)
		}

		start := local.Add(host.frame.Origin())
		for i := 0; i < 200; i++ {
			global := start.Add(geom.Point{X: rng.Intn(1601) - 800, Y: rng.Intn(1201) - 600})
			before := host.frame
			candidate := resizeCandidate(before, region, global)

			c.HandlePointer(dragGlobal(global, host.frame))

			if !c.opts.Bounds.Admits(host.frame) {
				t.Fatalf("%s: frame %+v violates bounds %+v", region, host.frame, c.opts.Bounds)
			}
			if !c.opts.Bounds.Admits(candidate) && host.frame != before {
				t.Fatalf("%s: rejected candidate %+v still changed frame %+v -> %+v", region, candidate, before, host.frame)
			}
			if c.opts.Bounds.Admits(candidate) && host.frame != candidate {
				t.Fatalf("%s: admitted candidate %+v not applied, frame %+v", region, candidate, host.frame)
			}
		}
	}
}

func TestControllerToggleMaximizeRestoresGeometry(t *testing.T) {
	start := geom.Rect{X: 120, Y: 80, Width: 640, Height: 480}
	c, host, shadow := newTestController(t, start, nil)

	c.ToggleMaximize()
	if !host.maximized {
		t.Fatal("window not maximized")
	}
	if b, _ := c.TitleBar().Button(ButtonMaximize); b.Glyph != GlyphRestore || b.Tooltip != "Restore" {
		t.Fatalf("maximize button = %+v, want restore glyph", b)
	}
	if c.TitleBar().Width() != host.screen.Width-10 {
		t.Fatalf("title bar width = %d after maximize", c.TitleBar().Width())
	}
	if last := shadow.applied[len(shadow.applied)-1]; !last.Maximized {
		t.Fatal("shadow not told about maximized state")
	}

	c.ToggleMaximize()
	if host.maximized {
		t.Fatal("window still maximized")
	}
	if host.frame != start {
		t.Fatalf("frame = %+v, want %+v", host.frame, start)
	}
	if b, _ := c.TitleBar().Button(ButtonMaximize); b.Glyph != GlyphMaximize {
		t.Fatalf("maximize button glyph = %v, want maximize", b.Glyph)
	}
}

func TestControllerFailedRestoreKeepsRestoreGeometry(t *testing.T) {
	start := geom.Rect{X: 120, Y: 80, Width: 640, Height: 480}
	c, host, _ := newTestController(t, start, nil)

	c.ToggleMaximize()
	host.restoreErr = errors.New("restore refused")
	c.ToggleMaximize()
	if !host.maximized {
		t.Fatal("window not maximized after failed restore")
	}
	if host.frame != host.screen {
		t.Fatalf("frame = %+v, want maximized %+v", host.frame, host.screen)
	}

	host.restoreErr = nil
	c.ToggleMaximize()
	if host.maximized {
		t.Fatal("window still maximized")
	}
	if host.frame != start {
		t.Fatalf("frame = %+v, want %+v", host.frame, start)
	}
}

func TestControllerMaximizedWindowIgnoresEdges(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)
	c.ToggleMaximize()

	p := &pointer{}
	for _, local := range []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 300}, {X: 1919, Y: 1079}} {
		c.HandlePointer(p.press(local))
		if c.Session().Active {
			t.Fatalf("press at %+v started %s on a maximized window", local, c.Phase())
		}
		c.HandlePointer(p.hover(local))
		if host.cursor != CursorArrow {
			t.Fatalf("cursor = %s at %+v, want arrow", host.cursor, local)
		}
	}
}

func TestControllerTitleBarButtons(t *testing.T) {
	c, host, shadow := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)
	p := &pointer{}

	click := func(kind ButtonKind) {
		t.Helper()
		b, ok := c.TitleBar().Button(kind)
		if !ok {
			t.Fatalf("no %s button", kind)
		}
		// Title-bar-local center translated to window-local.
		center := geom.Point{X: b.Bounds.X + b.Bounds.Width/2, Y: b.Bounds.Y + b.Bounds.Height/2}
		local := center.Add(c.TitleBarRect().Origin())
		c.HandlePointer(p.press(local))
		if c.Session().Active {
			t.Fatalf("%s press started a gesture", kind)
		}
		if b, _ := c.TitleBar().Button(kind); !b.Pressed {
			t.Fatalf("%s button not pressed", kind)
		}
		c.HandlePointer(p.release(local))
	}

	click(ButtonMinimize)
	if !host.minimized {
		t.Fatal("minimize button did not minimize")
	}

	click(ButtonMaximize)
	if !host.maximized {
		t.Fatal("maximize button did not maximize")
	}
	// Buttons stay live while maximized.
	click(ButtonMaximize)
	if host.maximized {
		t.Fatal("restore button did not restore")
	}

	w := &fakeWidget{}
	c.SetCentralWidget(w)
	click(ButtonClose)
	if !host.closed || !c.Closed() {
		t.Fatal("close button did not close")
	}
	if !w.destroyed {
		t.Fatal("central widget not destroyed on close")
	}
	if shadow.released != 1 {
		t.Fatalf("shadow released %d times, want 1", shadow.released)
	}

	c.Close()
	if shadow.released != 1 {
		t.Fatal("second Close released the shadow again")
	}
}

func TestControllerButtonReleaseOutsideCancels(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)
	p := &pointer{}

	b, _ := c.TitleBar().Button(ButtonClose)
	local := b.Bounds.Origin().Add(c.TitleBarRect().Origin()).Add(geom.Point{X: 2, Y: 2})
	c.HandlePointer(p.press(local))
	c.HandlePointer(p.release(geom.Point{X: 400, Y: 300}))
	if host.closed {
		t.Fatal("release outside the button closed the window")
	}
	if b, _ := c.TitleBar().Button(ButtonClose); b.Pressed {
		t.Fatal("button still pressed after release")
	}
}

func TestControllerDoubleClickTogglesMaximize(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)
	p := &pointer{}
	local := geom.Point{X: 200, Y: 20}

	c.HandlePointer(p.press(local))
	if c.Phase() != PhaseDragging {
		t.Fatalf("phase = %s after first press, want dragging", c.Phase())
	}
	c.HandlePointer(p.release(local))
	c.HandlePointer(p.press(local))
	if !host.maximized {
		t.Fatal("double-click did not maximize")
	}
	if c.Session().Active {
		t.Fatal("double-click left a gesture active")
	}
	c.HandlePointer(p.release(local))

	// A slow second click is a plain press.
	c.HandlePointer(p.press(local))
	c.HandlePointer(p.release(local))
	p.now += time.Second
	c.HandlePointer(p.press(local))
	if !host.maximized {
		t.Fatal("slow clicks toggled maximize")
	}
}

func TestControllerClickAfterQuickDragIsNotDoubleClick(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)
	p := &pointer{}
	local := geom.Point{X: 200, Y: 20}

	c.HandlePointer(p.press(local))
	c.HandlePointer(dragGlobal(geom.Point{X: 500, Y: 320}, host.frame))
	if got := host.frame.Origin(); got != (geom.Point{X: 300, Y: 300}) {
		t.Fatalf("origin = %+v after drag, want (300,300)", got)
	}
	p.origin = host.frame.Origin()
	c.HandlePointer(p.release(local))
	c.HandlePointer(p.press(local))
	if host.maximized {
		t.Fatal("click after a drag toggled maximize")
	}
	if c.Phase() != PhaseDragging {
		t.Fatalf("phase = %s, want dragging", c.Phase())
	}
	c.HandlePointer(p.release(local))

	// A real double-click at the new position still maximizes.
	c.HandlePointer(p.press(local))
	if !host.maximized {
		t.Fatal("double-click after the drag did not maximize")
	}
}

func TestControllerLostButtonEndsGesture(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)
	p := &pointer{}

	c.HandlePointer(p.press(geom.Point{X: 400, Y: 598}))
	if c.Phase() != PhaseResizing {
		t.Fatalf("phase = %s, want resizing", c.Phase())
	}
	c.HandlePointer(p.hover(geom.Point{X: 400, Y: 700}))
	if c.Session().Active {
		t.Fatal("move without the primary button kept the gesture")
	}
	if host.frame.Height != 600 {
		t.Fatalf("height = %d, want 600", host.frame.Height)
	}
}

func TestControllerCursorTracksHover(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)
	p := &pointer{}

	steps := []struct {
		local geom.Point
		want  CursorShape
	}{
		{geom.Point{X: 400, Y: 300}, CursorArrow},
		{geom.Point{X: 799, Y: 300}, CursorSizeHorizontal},
		{geom.Point{X: 400, Y: 599}, CursorSizeVertical},
		{geom.Point{X: 0, Y: 599}, CursorSizeBDiag},
		{geom.Point{X: 799, Y: 599}, CursorSizeFDiag},
		{geom.Point{X: 400, Y: 20}, CursorArrow},
	}
	for _, s := range steps {
		c.HandlePointer(p.hover(s.local))
		if host.cursor != s.want {
			t.Fatalf("cursor at %+v = %s, want %s", s.local, host.cursor, s.want)
		}
	}
}

func TestControllerWMPolicyHandsOffGestures(t *testing.T) {
	host := gestureHost{newFakeHost(geom.Rect{X: 0, Y: 0, Width: 800, Height: 600})}
	opts := DefaultOptions()
	opts.HitTest = HitTestWM
	c := NewController(host, opts)
	p := &pointer{}

	c.HandlePointer(p.press(geom.Point{X: 2, Y: 300}))
	c.HandlePointer(p.press(geom.Point{X: 200, Y: 20}))
	if c.Session().Active {
		t.Fatal("controller started its own gesture under the wm policy")
	}
	if len(host.gestures) != 2 || host.gestures[0] != RegionLeft || host.gestures[1] != RegionTitleBar {
		t.Fatalf("system gestures = %v, want [left title-bar]", host.gestures)
	}

	region, handled := c.NativeHitTest(geom.Point{X: 799, Y: 599})
	if region != RegionBottomRight || !handled {
		t.Fatalf("NativeHitTest = %s, %v; want bottom-right, true", region, handled)
	}
	if _, handled := c.NativeHitTest(geom.Point{X: 400, Y: 300}); handled {
		t.Fatal("content area reported as handled")
	}
}

func TestControllerAppPolicyLeavesNativeHitTestUnhandled(t *testing.T) {
	c, _, _ := newTestController(t, geom.Rect{X: 100, Y: 100, Width: 800, Height: 600}, nil)

	region, handled := c.NativeHitTest(geom.Point{X: 101, Y: 400})
	if region != RegionLeft {
		t.Fatalf("region = %s, want left", region)
	}
	if handled {
		t.Fatal("app policy reported native hit test as handled")
	}
}

func TestControllerSetCentralWidget(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)

	first := &fakeWidget{}
	c.SetCentralWidget(first)
	want := geom.Rect{X: 5, Y: 35, Width: 790, Height: 560}
	if first.bounds != want {
		t.Fatalf("content bounds = %+v, want %+v", first.bounds, want)
	}

	second := &fakeWidget{}
	c.SetCentralWidget(second)
	if !first.destroyed {
		t.Fatal("replaced widget not destroyed")
	}
	if c.CentralWidget() != Widget(second) {
		t.Fatal("central widget not replaced")
	}

	c.HandlePointer((&pointer{}).press(geom.Point{X: 798, Y: 598}))
	c.HandlePointer(dragGlobal(geom.Point{X: 899, Y: 699}, host.frame))
	if second.bounds.Width != 890 || second.bounds.Height != 660 {
		t.Fatalf("content not relaid out after resize: %+v", second.bounds)
	}
}

func TestControllerSetWindowTitle(t *testing.T) {
	c, host, _ := newTestController(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, nil)

	c.SetWindowTitle("Editor")
	if host.title != "Editor" || c.TitleBar().Title() != "Editor" {
		t.Fatalf("titles = %q / %q, want Editor", host.title, c.TitleBar().Title())
	}
	if c.State().Title != "Editor" {
		t.Fatalf("State().Title = %q", c.State().Title)
	}
}
