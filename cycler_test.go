package reveal

import (
	"errors"
	"testing"
	"time"
)

func newRecordedCycler(t *testing.T, count int, interval time.Duration) (*AutoCycler, *[]int) {
	t.Helper()
	var changes []int
	c, err := NewAutoCycler(count, interval, func(i int) { changes = append(changes, i) })
	if err != nil {
		t.Fatal(err)
	}
	return c, &changes
}

func TestCyclerAdvancesEveryInterval(t *testing.T) {
	c, changes := newRecordedCycler(t, 3, time.Second)
	c.Start()

	c.Update(999 * time.Millisecond)
	if len(*changes) != 0 {
		t.Fatalf("advanced early: %v", *changes)
	}
	c.Update(time.Millisecond)
	if c.ActiveIndex() != 1 {
		t.Fatalf("ActiveIndex = %d, want 1", c.ActiveIndex())
	}
	c.Update(time.Second)
	c.Update(time.Second)
	want := []int{1, 2, 0}
	for i, w := range want {
		if (*changes)[i] != w {
			t.Errorf("change %d = %d, want %d", i, (*changes)[i], w)
		}
	}
}

func TestCyclerNotStarted(t *testing.T) {
	c, changes := newRecordedCycler(t, 3, time.Second)
	c.Update(10 * time.Second)
	if len(*changes) != 0 || c.Started() {
		t.Error("cycler advanced before Start")
	}
}

func TestCyclerPauseFreezesCountdown(t *testing.T) {
	c, changes := newRecordedCycler(t, 3, time.Second)
	c.Start()
	c.Update(600 * time.Millisecond)

	c.Pause()
	if !c.State().Paused {
		t.Error("State().Paused = false")
	}
	c.Update(10 * time.Second)
	if len(*changes) != 0 {
		t.Fatal("advanced while paused")
	}
	if c.Remaining() != 400*time.Millisecond {
		t.Fatalf("Remaining = %v, want 400ms", c.Remaining())
	}

	c.Resume()
	c.Update(399 * time.Millisecond)
	if len(*changes) != 0 {
		t.Fatal("resume restarted with less than the remaining wait")
	}
	c.Update(time.Millisecond)
	if len(*changes) != 1 {
		t.Fatal("did not advance after the remaining wait")
	}
}

func TestCyclerPauseBeforeStart(t *testing.T) {
	c, changes := newRecordedCycler(t, 2, time.Second)
	c.Pause()
	c.Start()
	c.Update(5 * time.Second)
	if len(*changes) != 0 {
		t.Error("advanced while paused from before Start")
	}
}

func TestCyclerLargeFrame(t *testing.T) {
	c, changes := newRecordedCycler(t, 3, time.Second)
	c.Start()
	c.Update(3500 * time.Millisecond)
	if len(*changes) != 1 || c.ActiveIndex() != 0 {
		t.Errorf("changes = %v, index %d", *changes, c.ActiveIndex())
	}
	if c.Remaining() != 500*time.Millisecond {
		t.Errorf("Remaining = %v, want 500ms", c.Remaining())
	}
	c.Update(1700 * time.Millisecond)
	if c.ActiveIndex() != 2 || c.Remaining() != 800*time.Millisecond {
		t.Errorf("index %d remaining %v, want 2 and 800ms", c.ActiveIndex(), c.Remaining())
	}
}

func TestCyclerLongStallFiresOnce(t *testing.T) {
	c, changes := newRecordedCycler(t, 7, time.Millisecond)
	c.Start()
	c.Update(10 * time.Minute)
	if len(*changes) != 1 {
		t.Fatalf("onChange fired %d times, want 1", len(*changes))
	}
	// 600000 intervals elapsed; 600000 mod 7 is 2.
	if c.ActiveIndex() != 2 {
		t.Errorf("ActiveIndex = %d, want 2", c.ActiveIndex())
	}
	if c.Remaining() != time.Millisecond {
		t.Errorf("Remaining = %v, want 1ms", c.Remaining())
	}
}

func TestCyclerSingleSlot(t *testing.T) {
	c, changes := newRecordedCycler(t, 1, time.Second)
	c.Start()
	c.Update(2 * time.Second)
	c.Update(time.Second)
	if c.ActiveIndex() != 0 || len(*changes) != 2 {
		t.Errorf("index %d, changes %v", c.ActiveIndex(), *changes)
	}
}

func TestCyclerSelect(t *testing.T) {
	c, changes := newRecordedCycler(t, 3, time.Second)
	c.Start()
	c.Update(900 * time.Millisecond)
	c.Select(2)
	if c.ActiveIndex() != 2 || c.Remaining() != time.Second {
		t.Errorf("after Select: index %d remaining %v", c.ActiveIndex(), c.Remaining())
	}
	c.Select(2)
	if len(*changes) != 1 {
		t.Errorf("selecting the active slot fired onChange: %v", *changes)
	}
	c.Select(-1)
	if c.ActiveIndex() != 2 {
		t.Errorf("Select(-1) = %d, want 2", c.ActiveIndex())
	}
	c.Select(4)
	if c.ActiveIndex() != 1 {
		t.Errorf("Select(4) = %d, want 1", c.ActiveIndex())
	}
}

func TestCyclerValidation(t *testing.T) {
	if _, err := NewAutoCycler(0, time.Second, nil); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("count 0: err = %v", err)
	}
	if _, err := NewAutoCycler(3, 0, nil); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("interval 0: err = %v", err)
	}
}

func TestCyclerStop(t *testing.T) {
	c, changes := newRecordedCycler(t, 3, time.Second)
	c.Start()
	c.Stop()
	c.Stop()
	c.Update(5 * time.Second)
	c.Select(2)
	if len(*changes) != 0 {
		t.Errorf("changes after Stop: %v", *changes)
	}
	if err := c.Start(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Start after Stop: err = %v", err)
	}
}

func TestCyclerPauseInsideCallback(t *testing.T) {
	var c *AutoCycler
	calls := 0
	c, _ = NewAutoCycler(3, time.Second, func(int) { calls++; c.Pause() })
	c.Start()
	c.Update(1500 * time.Millisecond)
	c.Update(5 * time.Second)
	if c.ActiveIndex() != 1 || calls != 1 {
		t.Errorf("ActiveIndex = %d after %d calls, want 1 after 1", c.ActiveIndex(), calls)
	}
	if c.Remaining() != 500*time.Millisecond {
		t.Errorf("Remaining = %v, want 500ms", c.Remaining())
	}
}
