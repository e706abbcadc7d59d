package geom

import "testing"

func TestRectEdgeSettersKeepOppositeEdge(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 800, Height: 600}

	left := r
	left.SetLeft(750)
	if left.X != 750 || left.Width != 50 || left.Right() != r.Right() {
		t.Fatalf("SetLeft(750) = %+v, want X=750 Width=50 right=%d", left, r.Right())
	}

	top := r
	top.SetTop(100)
	if top.Y != 100 || top.Height != 500 || top.Bottom() != r.Bottom() {
		t.Fatalf("SetTop(100) = %+v, want Y=100 Height=500", top)
	}

	right := r
	right.SetRight(999)
	if right.X != 0 || right.Width != 1000 {
		t.Fatalf("SetRight(999) = %+v, want Width=1000", right)
	}

	bottom := r
	bottom.SetBottom(299)
	if bottom.Y != 0 || bottom.Height != 300 {
		t.Fatalf("SetBottom(299) = %+v, want Height=300", bottom)
	}
}

func TestRectContainsUsesInclusiveEdges(t *testing.T) {
	r := Rect{X: 5, Y: 5, Width: 10, Height: 30}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{5, 5}, true},
		{Point{14, 34}, true},
		{Point{15, 10}, false},
		{Point{10, 35}, false},
		{Point{4, 10}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if (Rect{}).Contains(Point{}) {
		t.Fatalf("empty rect must not contain its origin")
	}
}

func TestSizeBoundsAdmits(t *testing.T) {
	b := SizeBounds{MinWidth: 200, MinHeight: 150, MaxWidth: 1000, MaxHeight: 800}
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"inside", Rect{Width: 800, Height: 600}, true},
		{"at minimum", Rect{Width: 200, Height: 150}, true},
		{"at maximum", Rect{Width: 1000, Height: 800}, true},
		{"too narrow", Rect{Width: 199, Height: 600}, false},
		{"too short", Rect{Width: 800, Height: 149}, false},
		{"too wide", Rect{Width: 1001, Height: 600}, false},
		{"too tall", Rect{Width: 800, Height: 801}, false},
		{"negative", Rect{Width: -5, Height: 600}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Admits(tt.r); got != tt.want {
				t.Fatalf("Admits(%+v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}

	if DefaultSizeBounds().Admits(Rect{Width: 0, Height: 10}) {
		t.Fatalf("zero width must be rejected even without a minimum")
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 60, Width: 100, Height: 100}
	got := a.Intersect(b)
	want := Rect{X: 50, Y: 60, Width: 50, Height: 40}
	if got != want {
		t.Fatalf("Intersect = %+v, want %+v", got, want)
	}
	if !a.Intersect(Rect{X: 200, Y: 200, Width: 5, Height: 5}).Empty() {
		t.Fatalf("disjoint rects must intersect to empty")
	}
}
