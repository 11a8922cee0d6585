package reveal

import (
	"errors"
	"slices"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		e, err := EasingByName(name)
		if err != nil {
			t.Fatalf("EasingByName(%q): %v", name, err)
		}
		if e(0) != 0 || e(1) != 1 {
			t.Errorf("%s: e(0)=%v e(1)=%v, want 0 and 1", name, e(0), e(1))
		}
		if e(-1) != 0 || e(2) != 1 {
			t.Errorf("%s: out-of-range input not clamped", name)
		}
	}
}

func TestEasingLinear(t *testing.T) {
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if !approx(EaseLinear(x), x) {
			t.Errorf("EaseLinear(%v) = %v", x, EaseLinear(x))
		}
	}
}

func TestEasingShapes(t *testing.T) {
	if EaseIn(0.5) >= 0.5 {
		t.Errorf("EaseIn(0.5) = %v, want < 0.5", EaseIn(0.5))
	}
	if EaseOut(0.5) <= 0.5 {
		t.Errorf("EaseOut(0.5) = %v, want > 0.5", EaseOut(0.5))
	}
	if !approx(EaseInOut(0.5), 0.5) {
		t.Errorf("EaseInOut(0.5) = %v, want 0.5", EaseInOut(0.5))
	}
}

func TestEasingBackOvershoots(t *testing.T) {
	peak := 0.0
	for x := 0.05; x < 1; x += 0.05 {
		if v := EaseBackOut(x); v > peak {
			peak = v
		}
	}
	if peak <= 1 {
		t.Errorf("back-out peak = %v, want overshoot above 1", peak)
	}
}

func TestFromTween(t *testing.T) {
	e := FromTween(ease.OutQuad)
	if !approx(e(0.5), 0.75) {
		t.Errorf("OutQuad(0.5) = %v, want 0.75", e(0.5))
	}
}

func TestEasingByNameEmptyIsLinear(t *testing.T) {
	e, err := EasingByName("")
	if err != nil {
		t.Fatal(err)
	}
	if !approx(e(0.3), 0.3) {
		t.Errorf("empty easing(0.3) = %v", e(0.3))
	}
}

func TestEasingByNameUnknown(t *testing.T) {
	if _, err := EasingByName("wobble"); !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("err = %v, want ErrUnknownEasing", err)
	}
}

func TestEasingNamesSorted(t *testing.T) {
	names := EasingNames()
	if !slices.IsSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
	if !slices.Contains(names, "ease-out") || !slices.Contains(names, "linear") {
		t.Errorf("missing standard names: %v", names)
	}
}
