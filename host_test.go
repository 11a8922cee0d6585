package reveal

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestHostFrameDelta(t *testing.T) {
	h := &host{}
	t0 := time.Unix(1000, 0)

	if got := h.frameDelta(60, t0); got != time.Second/60 {
		t.Errorf("fixed TPS: dt = %v, want %v", got, time.Second/60)
	}

	// Display-synced ticks use wall-clock time and never go negative.
	steps := []struct {
		now  time.Time
		want time.Duration
	}{
		{t0, 0},
		{t0.Add(7 * time.Millisecond), 7 * time.Millisecond},
		{t0.Add(23 * time.Millisecond), 16 * time.Millisecond},
		{t0.Add(20 * time.Millisecond), 0},
	}
	for i, s := range steps {
		if got := h.frameDelta(ebiten.SyncWithFPS, s.now); got != s.want {
			t.Errorf("step %d: dt = %v, want %v", i, got, s.want)
		}
	}

	// Switching back to a fixed rate and then to synced again starts fresh.
	h.frameDelta(120, t0.Add(time.Hour))
	if got := h.frameDelta(ebiten.SyncWithFPS, t0.Add(2*time.Hour)); got != 0 {
		t.Errorf("after fixed TPS: dt = %v, want 0", got)
	}
}
