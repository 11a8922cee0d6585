package reveal

import (
	"errors"
	"testing"
)

func TestLoadScrollScript(t *testing.T) {
	data := []byte(`
steps:
  - action: scroll
    y: 500
  - action: wait
    frames: 3
  - action: smooth
    y: 1200
    seconds: 0.5
    easing: ease-in-out
  - action: sweep
    from: 1200
    to: 0
    frames: 6
  - action: resize
    width: 390
    height: 844
  - action: scrollBy
    dy: -40
`)
	r, err := LoadScrollScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 6 {
		t.Fatalf("steps = %d, want 6", len(r.steps))
	}
	if r.steps[2].Easing != "ease-in-out" || r.steps[2].Seconds != 0.5 {
		t.Errorf("smooth step = %+v", r.steps[2])
	}
	if r.Done() {
		t.Error("fresh runner should not be done")
	}
}

func TestLoadScrollScript_JSON(t *testing.T) {
	r, err := LoadScrollScript([]byte(`{"steps":[{"action":"scroll","y":10}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if r.steps[0].Y != 10 {
		t.Errorf("Y = %v", r.steps[0].Y)
	}
}

func TestLoadScrollScript_Invalid(t *testing.T) {
	if _, err := LoadScrollScript([]byte("steps: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadScrollScript_Empty(t *testing.T) {
	if _, err := LoadScrollScript([]byte("steps: []")); err == nil {
		t.Error("expected error for empty script")
	}
}

func TestLoadScrollScript_UnknownAction(t *testing.T) {
	if _, err := LoadScrollScript([]byte("steps:\n  - action: teleport\n")); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestLoadScrollScript_UnknownEasing(t *testing.T) {
	_, err := LoadScrollScript([]byte("steps:\n  - action: smooth\n    y: 10\n    easing: wobble\n"))
	if !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("err = %v, want ErrUnknownEasing", err)
	}
}

func runScript(t *testing.T, src string) *Page {
	t.Helper()
	r, err := LoadScrollScript([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	p := NewPage(PageConfig{Viewport: Viewport{Width: 800, Height: 600}})
	t.Cleanup(p.Dispose)
	p.SetScript(r)
	return p
}

func TestRunnerStep_ScrollAndWait(t *testing.T) {
	p := runScript(t, `
steps:
  - action: scroll
    y: 500
  - action: wait
    frames: 3
  - action: scroll
    y: 800
`)
	var ys []float64
	for i := 0; i < 7; i++ {
		p.Frame(frame)
		ys = append(ys, p.Viewport().ScrollY)
	}
	want := []float64{500, 500, 500, 500, 800, 800, 800}
	for i := range want {
		if ys[i] != want[i] {
			t.Errorf("frame %d ScrollY = %v, want %v", i+1, ys[i], want[i])
		}
	}
	if !p.runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerWaitsForSweep(t *testing.T) {
	p := runScript(t, `
steps:
  - action: sweep
    from: 0
    to: 300
    frames: 3
  - action: scroll
    y: 50
`)
	var ys []float64
	for i := 0; i < 5; i++ {
		p.Frame(frame)
		ys = append(ys, p.Viewport().ScrollY)
	}
	want := []float64{100, 200, 300, 50, 50}
	for i := range want {
		if ys[i] != want[i] {
			t.Errorf("frame %d ScrollY = %v, want %v", i+1, ys[i], want[i])
		}
	}
}

func TestRunnerWaitsForSmoothScroll(t *testing.T) {
	p := runScript(t, `
steps:
  - action: smooth
    y: 1000
    seconds: 0.064
    easing: linear
  - action: scroll
    y: 0
`)
	for i := 0; i < 4; i++ {
		p.Frame(frame)
	}
	if got := p.Viewport().ScrollY; got < 990 {
		t.Fatalf("smooth scroll interrupted early: ScrollY = %v", got)
	}
	for i := 0; i < 3; i++ {
		p.Frame(frame)
	}
	if got := p.Viewport().ScrollY; got != 0 {
		t.Errorf("ScrollY = %v, want 0 after the smooth scroll finished", got)
	}
}

func TestRunnerStep_Resize(t *testing.T) {
	p := runScript(t, `
steps:
  - action: resize
    width: 390
    height: 844
`)
	p.Frame(frame)
	if v := p.Viewport(); v.Width != 390 || v.Height != 844 {
		t.Errorf("Viewport = %+v", v)
	}
}

func TestRunnerDone(t *testing.T) {
	p := runScript(t, "steps:\n  - action: scroll\n    y: 10\n")
	p.Frame(frame)
	if p.runner.Done() {
		t.Error("done while its injection is still queued")
	}
	p.Frame(frame)
	if !p.runner.Done() {
		t.Error("runner should be done")
	}
}
