package reveal

import (
	"fmt"
	"math"
	"time"
)

// CountUp animates a displayed number from 0 to a target in a fixed number of
// discrete ticks. It is driven by Update like every other engine timer; it
// never starts itself.
type CountUp struct {
	ID       uint32
	target   float64
	duration time.Duration
	steps    int
	onTick   func(k int, value float64)

	elapsed time.Duration
	next    int // index of the next tick to emit
	value   float64
	started bool
	stopped bool
}

// NewCountUp creates a count-up to target over duration in steps ticks. The
// callback receives the tick index and the value to display.
func NewCountUp(target float64, duration time.Duration, steps int, onTick func(k int, value float64)) (*CountUp, error) {
	if steps < 1 {
		return nil, fmt.Errorf("create count-up with %d steps: %w", steps, ErrInvalidSteps)
	}
	if duration < 0 {
		duration = 0
	}
	return &CountUp{
		ID:       nextHandleID(),
		target:   target,
		duration: duration,
		steps:    steps,
		onTick:   onTick,
	}, nil
}

// Start emits tick 0 and begins the count. Starting twice is a no-op;
// starting after Stop returns ErrDisposed.
func (c *CountUp) Start() error {
	if c.stopped {
		return useAfterDispose("Start", "count-up", c.ID)
	}
	if c.started {
		return nil
	}
	c.started = true
	c.fireDue()
	return nil
}

// Update advances the count by dt and emits every tick that came due, in
// order.
func (c *CountUp) Update(dt time.Duration) {
	if !c.started || c.stopped || c.Done() {
		return
	}
	c.elapsed += dt
	c.fireDue()
}

// fireDue emits ticks whose scheduled time k*duration/steps has passed.
// Compared as elapsed*steps >= k*duration to stay in integer arithmetic.
func (c *CountUp) fireDue() {
	for c.next <= c.steps && !c.stopped {
		k := c.next
		if time.Duration(c.steps)*c.elapsed < time.Duration(k)*c.duration {
			return
		}
		c.next++
		c.value = c.tickValue(k)
		if c.onTick != nil {
			c.onTick(k, c.value)
		}
	}
}

// tickValue is floor(target*k/steps), except the last tick which is exactly
// target.
func (c *CountUp) tickValue(k int) float64 {
	if k >= c.steps {
		return c.target
	}
	return math.Floor(c.target * float64(k) / float64(c.steps))
}

// Value returns the most recently emitted value.
func (c *CountUp) Value() float64 {
	return c.value
}

// Started reports whether Start has been called.
func (c *CountUp) Started() bool {
	return c.started
}

// Done reports whether the final tick has been emitted.
func (c *CountUp) Done() bool {
	return c.next > c.steps
}

// Stop cancels any remaining ticks. No callback runs after Stop returns.
// Safe to call more than once.
func (c *CountUp) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.onTick = nil
}
