package reveal

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestEntranceReachesTarget(t *testing.T) {
	cfg := DefaultEntrance
	cfg.Duration = 0.5
	cfg.Ease = ease.Linear
	e := NewEntrance(nil, cfg)
	if e.Style.Opacity != 0 || e.Style.OffsetY != 40 {
		t.Fatalf("initial Style = %+v, want From", e.Style)
	}
	e.Start()

	// Exact halves avoid float32 accumulation drift.
	if e.Update(250 * time.Millisecond) {
		t.Fatal("finished at half duration")
	}
	if math.Abs(e.Style.Opacity-0.5) > 0.01 || math.Abs(e.Style.OffsetY-20) > 0.5 {
		t.Errorf("midpoint Style = %+v", e.Style)
	}
	if !e.Update(250 * time.Millisecond) {
		t.Fatal("expected finish after full duration")
	}
	if !e.Done {
		t.Fatal("Done = false")
	}
	if math.Abs(e.Style.Opacity-1) > 0.01 || math.Abs(e.Style.OffsetY) > 0.01 {
		t.Errorf("final Style = %+v", e.Style)
	}
}

func TestEntranceNotStartedHoldsFrom(t *testing.T) {
	e := NewEntrance(nil, DefaultEntrance)
	e.Update(time.Second)
	if e.Style.Opacity != 0 || e.Done {
		t.Errorf("unstarted entrance moved: %+v", e.Style)
	}
}

func TestEntranceOnlyMovingFieldsTween(t *testing.T) {
	e := NewEntrance(nil, EntranceConfig{
		From:     Style{Opacity: 1, Scale: 0.5},
		To:       Style{Opacity: 1, Scale: 1},
		Duration: 0.5,
	})
	if e.count != 1 {
		t.Errorf("tween count = %d, want 1", e.count)
	}
}

func TestEntranceNoMovementFinishesImmediately(t *testing.T) {
	e := NewEntrance(nil, EntranceConfig{From: Style{Opacity: 1}, To: Style{Opacity: 1}, Duration: 1})
	e.Start()
	if !e.Update(time.Millisecond) {
		t.Error("static entrance should finish on its first update")
	}
}

func TestEntranceDelay(t *testing.T) {
	cfg := DefaultEntrance
	cfg.Duration = 0.5
	cfg.Delay = 100 * time.Millisecond
	e := NewEntrance(nil, cfg)
	e.Start()

	e.Update(50 * time.Millisecond)
	if e.Style.Opacity != 0 {
		t.Errorf("moved during delay: %+v", e.Style)
	}
	e.Update(300 * time.Millisecond)
	if e.Style.Opacity <= 0 {
		t.Error("did not move after the delay")
	}
	e.Update(250 * time.Millisecond)
	if !e.Done {
		t.Error("expected Done after delay plus duration")
	}
}

func TestEntranceDefaultEaseIsOutCubic(t *testing.T) {
	cfg := DefaultEntrance
	cfg.Duration = 1
	e := NewEntrance(nil, cfg)
	e.Start()
	e.Update(500 * time.Millisecond)
	if e.Style.Opacity <= 0.5 {
		t.Errorf("ease-out midpoint opacity = %v, want > 0.5", e.Style.Opacity)
	}
}

func TestEntranceDisposedTargetFinishesWithoutWriting(t *testing.T) {
	r := NewRegionAt("card", 0, 100)
	e := NewEntrance(r, DefaultEntrance)
	e.Start()
	r.Dispose()
	if !e.Update(100 * time.Millisecond) {
		t.Error("Update should report the finish for a disposed target")
	}
	if !e.Done || e.Style.Opacity != 0 {
		t.Errorf("Done=%v Style=%+v", e.Done, e.Style)
	}
	if e.Update(100 * time.Millisecond) {
		t.Error("finish reported twice")
	}
}

func TestEntranceStop(t *testing.T) {
	e := NewEntrance(nil, DefaultEntrance)
	e.Start()
	e.Update(100 * time.Millisecond)
	held := e.Style
	e.Stop()
	e.Update(time.Second)
	if e.Style != held {
		t.Errorf("Style changed after Stop: %+v -> %+v", held, e.Style)
	}
	if err := e.Start(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Start after Stop: err = %v", err)
	}
}
