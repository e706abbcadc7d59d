package frameless

import (
	"errors"
	"testing"

	"github.com/1broseidon/frameless/internal/geom"
)

type failingShadow struct {
	err   error
	calls int
}

func (s *failingShadow) Name() string { return "failing" }
func (s *failingShadow) Apply(ShadowFrame) error {
	s.calls++
	return s.err
}
func (s *failingShadow) Release() error { return s.err }

func TestShadowRendererWaitsForRealize(t *testing.T) {
	host := newFakeHost(geom.Rect{X: 10, Y: 20, Width: 300, Height: 200})
	host.realized = false
	shadow := &fakeShadow{}

	r := NewShadowRenderer(host, shadow, nil)
	if len(shadow.applied) != 0 {
		t.Fatal("shadow applied before the window was realized")
	}

	host.realized = true
	r.Refresh()
	if len(shadow.applied) != 1 {
		t.Fatalf("applied %d times, want 1", len(shadow.applied))
	}
	if got := shadow.applied[0].Bounds; got != host.frame {
		t.Fatalf("shadow bounds = %+v, want %+v", got, host.frame)
	}
	if r.Strategy() != "fake" {
		t.Fatalf("Strategy() = %q", r.Strategy())
	}
}

func TestShadowRendererNoStrategy(t *testing.T) {
	r := NewShadowRenderer(newFakeHost(geom.Rect{Width: 10, Height: 10}), nil, nil)
	r.Refresh()
	r.Release()
	if r.Strategy() != "none" {
		t.Fatalf("Strategy() = %q, want none", r.Strategy())
	}

	var nilRenderer *ShadowRenderer
	nilRenderer.Refresh()
	if nilRenderer.Strategy() != "none" {
		t.Fatal("nil renderer strategy not none")
	}
}

func TestShadowRendererSwallowsErrors(t *testing.T) {
	for _, err := range []error{ErrNotRealized, errors.New("boom")} {
		s := &failingShadow{err: err}
		r := NewShadowRenderer(newFakeHost(geom.Rect{Width: 10, Height: 10}), s, nil)
		r.Refresh()
		r.Release()
		if s.calls != 2 {
			t.Fatalf("Apply called %d times, want 2", s.calls)
		}
	}
}

func TestShadowRendererHide(t *testing.T) {
	c, _, shadow := newTestController(t, geom.Rect{Width: 800, Height: 600}, nil)
	c.HandleUnmap()
	if shadow.hidden != 1 {
		t.Fatalf("hidden %d times, want 1", shadow.hidden)
	}

	// Strategies without Hide are left alone.
	r := NewShadowRenderer(newFakeHost(geom.Rect{Width: 10, Height: 10}), &failingShadow{}, nil)
	r.Hide()
}
