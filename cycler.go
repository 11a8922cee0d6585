package reveal

import (
	"fmt"
	"time"
)

// CycleState is the observable state of an AutoCycler.
type CycleState struct {
	ActiveIndex int
	Paused      bool
}

// AutoCycler advances an index through count slots every interval. Pausing
// freezes the countdown: resuming continues the remaining wait rather than
// starting a fresh interval. It has no opinion about visibility; callers gate
// Start themselves (Section.AutoCycle does so with a Watcher).
type AutoCycler struct {
	ID        uint32
	count     int
	interval  time.Duration
	remaining time.Duration
	active    int
	paused    bool
	started   bool
	stopped   bool
	onChange  func(index int)
}

// NewAutoCycler creates a cycler over count slots. onChange runs after every
// index change, automatic or from Select.
func NewAutoCycler(count int, interval time.Duration, onChange func(index int)) (*AutoCycler, error) {
	if count < 1 {
		return nil, fmt.Errorf("create auto-cycler of %d: %w", count, ErrInvalidCount)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("create auto-cycler every %v: %w", interval, ErrInvalidInterval)
	}
	return &AutoCycler{
		ID:        nextHandleID(),
		count:     count,
		interval:  interval,
		remaining: interval,
		onChange:  onChange,
	}, nil
}

// Start begins the countdown. Starting twice is a no-op; starting after Stop
// returns ErrDisposed.
func (c *AutoCycler) Start() error {
	if c.stopped {
		return useAfterDispose("Start", "auto-cycler", c.ID)
	}
	c.started = true
	return nil
}

// Pause freezes the countdown. May be called before Start.
func (c *AutoCycler) Pause() {
	c.paused = true
}

// Resume continues the countdown from where Pause froze it.
func (c *AutoCycler) Resume() {
	c.paused = false
}

// Update advances the countdown by dt. However many intervals elapsed, the
// index moves once, by that many slots, and onChange fires once.
func (c *AutoCycler) Update(dt time.Duration) {
	if !c.started || c.stopped || c.paused || dt <= 0 {
		return
	}
	if dt < c.remaining {
		c.remaining -= dt
		return
	}
	dt -= c.remaining
	steps := 1 + dt/c.interval
	c.remaining = c.interval - dt%c.interval
	c.advance((c.active + int(steps%time.Duration(c.count))) % c.count)
}

// Select jumps to index (taken mod count) and restarts the countdown, as a
// carousel does when a user picks a slide.
func (c *AutoCycler) Select(index int) {
	if c.stopped {
		return
	}
	index %= c.count
	if index < 0 {
		index += c.count
	}
	c.remaining = c.interval
	if index != c.active {
		c.advance(index)
	}
}

func (c *AutoCycler) advance(index int) {
	c.active = index
	if c.onChange != nil {
		c.onChange(index)
	}
}

// ActiveIndex returns the current slot.
func (c *AutoCycler) ActiveIndex() int {
	return c.active
}

// Remaining returns the time left until the next automatic advance.
func (c *AutoCycler) Remaining() time.Duration {
	return c.remaining
}

// State returns a snapshot of the cycler.
func (c *AutoCycler) State() CycleState {
	return CycleState{ActiveIndex: c.active, Paused: c.paused}
}

// Started reports whether Start has been called.
func (c *AutoCycler) Started() bool {
	return c.started
}

// Stop halts the cycler and drops its callback. Safe to call more than once.
func (c *AutoCycler) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.onChange = nil
}
