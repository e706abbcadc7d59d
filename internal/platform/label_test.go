package platform

import (
	"testing"

	"github.com/1broseidon/frameless/internal/geom"
)

func TestLabel(t *testing.T) {
	l := NewLabel("hello", 0x202020, 0xffffff)
	r := geom.Rect{X: 1, Y: 32, Width: 798, Height: 567}
	l.SetBounds(r)
	if l.Bounds() != r {
		t.Fatalf("expected bounds %v, got %v", r, l.Bounds())
	}
	if l.Destroyed() {
		t.Fatalf("new label reported destroyed")
	}
	l.Destroy()
	if !l.Destroyed() {
		t.Fatalf("expected destroyed after Destroy")
	}
}
