package reveal

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Style holds the render-affecting values an Entrance animates.
type Style struct {
	Opacity float64
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// EntranceConfig describes a one-shot entrance: every field moves from its
// From value to its To value over Duration seconds once the entrance starts.
type EntranceConfig struct {
	From, To Style
	// Duration is the tween length in seconds.
	Duration float32
	// Delay postpones the tween after Start. Staggered entrances use i*delay.
	Delay time.Duration
	// Ease defaults to ease.OutCubic.
	Ease ease.TweenFunc
}

// DefaultEntrance fades in while rising 40 units, the classic reveal.
var DefaultEntrance = EntranceConfig{
	From:     Style{Opacity: 0, OffsetY: 40, Scale: 1},
	To:       Style{Opacity: 1, OffsetY: 0, Scale: 1},
	Duration: 0.6,
}

// Entrance animates up to 4 Style fields at once. It sits at its From style
// until Start, then runs once; it never reverses. If the target region is
// disposed, the entrance finishes immediately without writing.
//
// There is no global animation manager; the owning Section calls Update.
type Entrance struct {
	ID      uint32
	Style   Style
	tweens  [4]*gween.Tween
	count   int
	fields  [4]*float64
	target  *Region
	delay   time.Duration
	started bool
	stopped bool
	Done    bool
}

// NewEntrance creates an entrance for target (which may be nil) with Style
// set to cfg.From.
func NewEntrance(target *Region, cfg EntranceConfig) *Entrance {
	fn := cfg.Ease
	if fn == nil {
		fn = ease.OutCubic
	}
	e := &Entrance{ID: nextHandleID(), Style: cfg.From, target: target, delay: cfg.Delay}
	e.add(&e.Style.Opacity, cfg.From.Opacity, cfg.To.Opacity, cfg.Duration, fn)
	e.add(&e.Style.OffsetX, cfg.From.OffsetX, cfg.To.OffsetX, cfg.Duration, fn)
	e.add(&e.Style.OffsetY, cfg.From.OffsetY, cfg.To.OffsetY, cfg.Duration, fn)
	e.add(&e.Style.Scale, cfg.From.Scale, cfg.To.Scale, cfg.Duration, fn)
	return e
}

// add registers a tween for field unless it does not move.
func (e *Entrance) add(field *float64, from, to float64, duration float32, fn ease.TweenFunc) {
	if from == to {
		return
	}
	e.tweens[e.count] = gween.New(float32(from), float32(to), duration, fn)
	e.fields[e.count] = field
	e.count++
}

// Start arms the entrance; the tween begins after the configured delay.
// Starting after Stop returns ErrDisposed.
func (e *Entrance) Start() error {
	if e.stopped {
		return useAfterDispose("Start", "entrance", e.ID)
	}
	e.started = true
	return nil
}

// Started reports whether Start has been called.
func (e *Entrance) Started() bool {
	return e.started
}

// Update advances all tweens by dt and writes values into Style. It reports
// whether the entrance finished during this call, which includes the early
// finish for a disposed target.
func (e *Entrance) Update(dt time.Duration) bool {
	if !e.started || e.stopped || e.Done {
		return false
	}
	if e.target != nil && e.target.IsDisposed() {
		e.Done = true
		return true
	}

	if e.delay > 0 {
		if dt < e.delay {
			e.delay -= dt
			return false
		}
		dt -= e.delay
		e.delay = 0
	}

	step := float32(dt.Seconds())
	allDone := true
	for i := 0; i < e.count; i++ {
		val, finished := e.tweens[i].Update(step)
		*e.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	e.Done = allDone
	return allDone
}

// Stop cancels the entrance, leaving Style where it is. Safe to call more
// than once.
func (e *Entrance) Stop() {
	e.stopped = true
	e.target = nil
}
