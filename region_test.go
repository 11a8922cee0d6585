package reveal

import "testing"

func TestNewRegionHasNoGeometry(t *testing.T) {
	r := NewRegion("card")
	if r.ID == 0 {
		t.Error("ID should be assigned")
	}
	if _, ok := r.Bounds(); ok {
		t.Error("new region should have no bounds")
	}
	v := Viewport{Height: 600}
	if f := r.VisibleFraction(v); f != 0 {
		t.Errorf("VisibleFraction without bounds = %v, want 0", f)
	}
}

func TestNewRegionIDsAreUnique(t *testing.T) {
	a := NewRegion("a")
	b := NewRegion("b")
	if a.ID == b.ID {
		t.Errorf("IDs collide: %d", a.ID)
	}
}

func TestRegionSetBoundsSwapsInverted(t *testing.T) {
	r := NewRegion("r")
	r.SetBounds(500, 300)
	b, ok := r.Bounds()
	if !ok || b.Top != 300 || b.Bottom != 500 {
		t.Errorf("Bounds() = %+v %v, want {300 500} true", b, ok)
	}
}

func TestRegionClearBounds(t *testing.T) {
	r := NewRegionAt("r", 0, 100)
	r.ClearBounds()
	if _, ok := r.Bounds(); ok {
		t.Error("bounds should be cleared")
	}
	if f := r.VisibleFraction(Viewport{Height: 600}); f != 0 {
		t.Errorf("VisibleFraction = %v, want 0", f)
	}
}

func TestRegionVisibleFraction(t *testing.T) {
	r := NewRegionAt("r", 1000, 200) // [1000, 1200]
	tests := []struct {
		name    string
		scrollY float64
		want    float64
	}{
		{"below viewport", 0, 0},
		{"touching bottom edge", 400, 0},
		{"quarter visible", 450, 0.25},
		{"half visible", 500, 0.5},
		{"fully visible", 800, 1},
		{"half above", 1100, 0.5},
		{"scrolled past", 1300, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Viewport{ScrollY: tt.scrollY, Width: 800, Height: 600}
			if got := r.VisibleFraction(v); got != tt.want {
				t.Errorf("VisibleFraction at %v = %v, want %v", tt.scrollY, got, tt.want)
			}
		})
	}
}

func TestRegionTallerThanViewport(t *testing.T) {
	r := NewRegionAt("tall", 0, 2000)
	v := Viewport{ScrollY: 500, Height: 500}
	if got := r.VisibleFraction(v); got != 0.25 {
		t.Errorf("VisibleFraction = %v, want 0.25", got)
	}
}

func TestRegionZeroHeight(t *testing.T) {
	r := NewRegionAt("line", 300, 0)
	if got := r.VisibleFraction(Viewport{ScrollY: 0, Height: 600}); got != 1 {
		t.Errorf("inside: VisibleFraction = %v, want 1", got)
	}
	if got := r.VisibleFraction(Viewport{ScrollY: 300, Height: 600}); got != 0 {
		t.Errorf("on top edge: VisibleFraction = %v, want 0", got)
	}
	if got := r.VisibleFraction(Viewport{ScrollY: 400, Height: 600}); got != 0 {
		t.Errorf("above: VisibleFraction = %v, want 0", got)
	}
}

func TestRegionEmptyViewport(t *testing.T) {
	r := NewRegionAt("r", 0, 100)
	if got := r.VisibleFraction(Viewport{Height: 0}); got != 0 {
		t.Errorf("VisibleFraction = %v, want 0", got)
	}
}

func TestRegionEdgeY(t *testing.T) {
	r := NewRegionAt("r", 100, 50)
	if r.edgeY(EdgeTop) != 100 || r.edgeY(EdgeBottom) != 150 {
		t.Errorf("edgeY = %v, %v", r.edgeY(EdgeTop), r.edgeY(EdgeBottom))
	}
}

func TestRegionDispose(t *testing.T) {
	r := NewRegionAt("r", 0, 100)
	r.Dispose()
	if !r.IsDisposed() {
		t.Fatal("IsDisposed = false")
	}
	if r.ID != 0 {
		t.Errorf("ID = %d, want 0 after dispose", r.ID)
	}
	if f := r.VisibleFraction(Viewport{Height: 600}); f != 0 {
		t.Errorf("disposed VisibleFraction = %v, want 0", f)
	}
	r.SetBounds(0, 100)
	if _, ok := r.Bounds(); ok {
		t.Error("SetBounds after Dispose should be ignored")
	}
	r.Dispose() // idempotent
}
