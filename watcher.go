package reveal

// VisibilityState is the observable state of a Watcher. Entered is monotonic:
// once true it stays true for the watcher's lifetime.
type VisibilityState struct {
	Entered bool
}

// Watcher observes one region and reports the first time it crosses a
// visibility threshold. It is one-shot: re-attaching to the same region means
// creating a new Watcher.
type Watcher struct {
	ID        uint32
	region    *Region
	threshold float64
	entered   bool
	detached  bool
	onEnter   []func()

	// checks counts intersection evaluations, for frame coalescing tests
	// and debug stats.
	checks int
}

// NewWatcher attaches a watcher to region. threshold is the fraction of the
// region's height that must be on screen, clamped to [0, 1]; any positive
// overlap is required even at threshold 0.
func NewWatcher(region *Region, threshold float64) *Watcher {
	return &Watcher{
		ID:        nextHandleID(),
		region:    region,
		threshold: clamp01(threshold),
	}
}

// OnEnter registers fn to run once, on the Update that flips Entered. Calls
// made after the watcher has entered or been detached are ignored; poll
// Entered instead.
func (w *Watcher) OnEnter(fn func()) {
	if w.detached || w.entered || fn == nil {
		return
	}
	w.onEnter = append(w.onEnter, fn)
}

// Update evaluates the watcher against the viewport and reports whether it
// entered during this call.
func (w *Watcher) Update(v Viewport) bool {
	if w.detached || w.entered {
		return false
	}
	w.checks++
	if w.region == nil {
		return false
	}
	frac := w.region.VisibleFraction(v)
	if frac <= 0 || frac < w.threshold {
		return false
	}
	w.entered = true
	callbacks := w.onEnter
	w.onEnter = nil
	for _, fn := range callbacks {
		if w.detached {
			break
		}
		fn()
	}
	return true
}

// Entered reports whether the region has ever crossed the threshold.
func (w *Watcher) Entered() bool {
	return w.entered
}

// State returns a snapshot of the watcher's visibility state.
func (w *Watcher) State() VisibilityState {
	return VisibilityState{Entered: w.entered}
}

// Region returns the observed region, or nil once detached.
func (w *Watcher) Region() *Region {
	return w.region
}

// Threshold returns the clamped visibility threshold.
func (w *Watcher) Threshold() float64 {
	return w.threshold
}

// Detach stops observation and releases the region and callbacks. Entered
// keeps its last value. Safe to call more than once.
func (w *Watcher) Detach() {
	if w.detached {
		return
	}
	w.detached = true
	w.region = nil
	w.onEnter = nil
}

// IsDetached reports whether Detach has been called.
func (w *Watcher) IsDetached() bool {
	return w.detached
}
