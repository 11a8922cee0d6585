package reveal

import "testing"

func TestSpanHeight(t *testing.T) {
	tests := []struct {
		span Span
		want float64
	}{
		{Span{Top: 10, Bottom: 30}, 20},
		{Span{Top: 5, Bottom: 5}, 0},
		{Span{Top: 30, Bottom: 10}, 0},
	}
	for _, tt := range tests {
		if got := tt.span.Height(); got != tt.want {
			t.Errorf("%+v.Height() = %v, want %v", tt.span, got, tt.want)
		}
	}
}

func TestSpanContainsEdges(t *testing.T) {
	s := Span{Top: 100, Bottom: 200}
	for _, y := range []float64{100, 150, 200} {
		if !s.Contains(y) {
			t.Errorf("Contains(%v) = false, want true", y)
		}
	}
	for _, y := range []float64{99.9, 200.1} {
		if s.Contains(y) {
			t.Errorf("Contains(%v) = true, want false", y)
		}
	}
}

func TestSpanOverlap(t *testing.T) {
	a := Span{Top: 0, Bottom: 100}
	tests := []struct {
		name  string
		other Span
		want  float64
	}{
		{"inside", Span{Top: 20, Bottom: 40}, 20},
		{"partial", Span{Top: 80, Bottom: 150}, 20},
		{"covering", Span{Top: -50, Bottom: 150}, 100},
		{"touching", Span{Top: 100, Bottom: 200}, 0},
		{"disjoint", Span{Top: 300, Bottom: 400}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlap(tt.other); got != tt.want {
				t.Errorf("Overlap = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlap(a); got != tt.want {
				t.Errorf("reverse Overlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewportSpan(t *testing.T) {
	v := Viewport{ScrollY: 250, Width: 800, Height: 600}
	got := v.Span()
	if got.Top != 250 || got.Bottom != 850 {
		t.Errorf("Span() = %+v, want {250 850}", got)
	}
}

func TestViewportSameSize(t *testing.T) {
	a := Viewport{ScrollY: 0, Width: 800, Height: 600}
	b := Viewport{ScrollY: 900, Width: 800, Height: 600}
	if !a.sameSize(b) {
		t.Error("scroll position should not affect sameSize")
	}
	b.Height = 601
	if a.sameSize(b) {
		t.Error("different heights reported as same size")
	}
}

func TestEdgeString(t *testing.T) {
	if EdgeTop.String() != "top" || EdgeBottom.String() != "bottom" {
		t.Errorf("got %q and %q", EdgeTop, EdgeBottom)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := map[EventType]string{
		EventEnter:        "enter",
		EventCountTick:    "count-tick",
		EventCycle:        "cycle",
		EventMediaLoaded:  "media-loaded",
		EventMediaError:   "media-error",
		EventEntranceDone: "entrance-done",
		EventType(200):    "unknown",
	}
	for et, want := range tests {
		if got := et.String(); got != want {
			t.Errorf("EventType(%d).String() = %q, want %q", et, got, want)
		}
	}
}

func TestClamp01(t *testing.T) {
	if clamp01(-0.5) != 0 || clamp01(0.25) != 0.25 || clamp01(3) != 1 {
		t.Error("clamp01 out of range")
	}
}

// recordSink collects events for assertions.
type recordSink struct {
	events []Event
}

func (r *recordSink) EmitEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *recordSink) ofType(et EventType) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Type == et {
			out = append(out, e)
		}
	}
	return out
}
