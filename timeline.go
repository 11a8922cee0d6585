package reveal

import (
	"fmt"
	"math"
)

// Mode selects how a ScrollTimeline responds to scrolling back.
type Mode uint8

const (
	// ModeScrub ties progress directly to the scroll position; scrolling
	// back reverses it.
	ModeScrub Mode = iota
	// ModeLatch only ever advances progress; it plays once and holds.
	ModeLatch
)

// String returns "scrub" or "latch".
func (m Mode) String() string {
	if m == ModeLatch {
		return "latch"
	}
	return "scrub"
}

// ParseMode converts "scrub" or "latch" to a Mode. The empty string is scrub.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "scrub":
		return ModeScrub, nil
	case "latch":
		return ModeLatch, nil
	}
	return ModeScrub, fmt.Errorf("unknown timeline mode %q", s)
}

// Offset is a scroll position bounding a timeline. With a nil Region it is
// the absolute position At. Otherwise it is the scroll position at which the
// region's RegionEdge lines up with the viewport's ViewportEdge, plus At.
type Offset struct {
	At           float64
	Region       *Region
	RegionEdge   Edge
	ViewportEdge Edge
}

// Abs returns an absolute offset.
func Abs(y float64) Offset {
	return Offset{At: y}
}

// Anchor returns an offset that tracks a region edge meeting a viewport edge.
// Anchor(r, EdgeTop, EdgeBottom) is the position where r's top enters from
// the bottom of the screen.
func Anchor(r *Region, regionEdge, viewportEdge Edge) Offset {
	return Offset{Region: r, RegionEdge: regionEdge, ViewportEdge: viewportEdge}
}

// Shift returns o moved by delta scroll units.
func (o Offset) Shift(delta float64) Offset {
	o.At += delta
	return o
}

// resolve returns the absolute scroll position of o for a viewport of the
// given height.
func (o Offset) resolve(viewportHeight float64) (float64, error) {
	if o.Region == nil {
		return o.At, nil
	}
	if _, ok := o.Region.Bounds(); !ok {
		return 0, fmt.Errorf("anchor on region %q: %w", o.Region.Name, ErrNoGeometry)
	}
	y := o.Region.edgeY(o.RegionEdge)
	if o.ViewportEdge == EdgeBottom {
		y -= viewportHeight
	}
	return y + o.At, nil
}

// Property is one animated quantity of a timeline.
type Property struct {
	Name     string
	From, To float64
	// Easing defaults to linear when nil.
	Easing Easing
}

// TimelineDescriptor declares a scroll-bound animation.
type TimelineDescriptor struct {
	Mode       Mode
	Start, End Offset
	Properties []Property
}

// Progress is the result of sampling a timeline.
type Progress struct {
	// Raw is the clamped linear progress in [0, 1], before easing.
	Raw   float64
	props []Property
	eased []float64
}

// Of returns the eased progress for the named property, or Raw when the
// timeline declares no such property.
func (p Progress) Of(name string) float64 {
	for i := range p.props {
		if p.props[i].Name == name {
			return p.eased[i]
		}
	}
	return p.Raw
}

// Value returns the named property interpolated between its From and To
// values. Unknown names return 0.
func (p Progress) Value(name string) float64 {
	for i := range p.props {
		if p.props[i].Name == name {
			pr := &p.props[i]
			return pr.From + (pr.To-pr.From)*p.eased[i]
		}
	}
	return 0
}

// Len returns the number of declared properties.
func (p Progress) Len() int {
	return len(p.props)
}

// At returns the name and eased progress of the i-th property.
func (p Progress) At(i int) (string, float64) {
	return p.props[i].Name, p.eased[i]
}

// ScrollTimeline maps a scroll range to per-property progress.
type ScrollTimeline struct {
	ID   uint32
	desc TimelineDescriptor

	viewportHeight float64
	start, end     float64

	// maxSeen is the latch high-water mark of raw progress.
	maxSeen float64

	// last sample, reused when the same position is sampled again in a frame.
	cached    bool
	cachedPos float64
	cachedRaw float64
	cachedOut []float64

	disposed bool
}

// NewScrollTimeline validates desc and resolves its offsets for a viewport of
// the given height. A range whose offsets coincide is rejected with
// ErrEmptyRange, and non-finite offsets with ErrInvalidRange.
func NewScrollTimeline(desc TimelineDescriptor, viewportHeight float64) (*ScrollTimeline, error) {
	t := &ScrollTimeline{ID: nextHandleID(), viewportHeight: viewportHeight}
	t.desc = desc
	t.desc.Properties = make([]Property, len(desc.Properties))
	for i, p := range desc.Properties {
		if p.Easing == nil {
			p.Easing = EaseLinear
		}
		t.desc.Properties[i] = p
	}
	if err := t.resolve(); err != nil {
		return nil, fmt.Errorf("create timeline: %w", err)
	}
	if t.start == t.end {
		return nil, fmt.Errorf("create timeline at %v: %w", t.start, ErrEmptyRange)
	}
	return t, nil
}

// resolve recomputes the absolute offsets. On error the previous offsets are
// kept.
func (t *ScrollTimeline) resolve() error {
	start, err := t.desc.Start.resolve(t.viewportHeight)
	if err != nil {
		return err
	}
	end, err := t.desc.End.resolve(t.viewportHeight)
	if err != nil {
		return err
	}
	if !finite(start) || !finite(end) || !finite(end-start) {
		return fmt.Errorf("range %v..%v: %w", start, end, ErrInvalidRange)
	}
	t.start, t.end = start, end
	t.cached = false
	return nil
}

// Resize re-resolves region-anchored offsets for a new viewport height or
// after region geometry changed. If the range collapses, sampling degrades to
// a step at the start offset instead of dividing by zero. A non-finite result
// returns ErrInvalidRange and leaves the previous range in place.
func (t *ScrollTimeline) Resize(viewportHeight float64) error {
	if t.disposed {
		return useAfterDispose("Resize", "timeline", t.ID)
	}
	prev := t.viewportHeight
	t.viewportHeight = viewportHeight
	if err := t.resolve(); err != nil {
		t.viewportHeight = prev
		return err
	}
	return nil
}

// Range returns the resolved start and end scroll positions.
func (t *ScrollTimeline) Range() (start, end float64) {
	return t.start, t.end
}

// Mode returns the timeline's mode.
func (t *ScrollTimeline) Mode() Mode {
	return t.desc.Mode
}

// raw computes clamped linear progress with no history.
func (t *ScrollTimeline) raw(scrollY float64) float64 {
	if t.start == t.end {
		if scrollY < t.start {
			return 0
		}
		return 1
	}
	return clamp01((scrollY - t.start) / (t.end - t.start))
}

// Sample returns the progress at scrollY. In scrub mode the result depends
// only on scrollY. In latch mode progress never decreases.
func (t *ScrollTimeline) Sample(scrollY float64) (Progress, error) {
	if t.disposed {
		return Progress{}, useAfterDispose("Sample", "timeline", t.ID)
	}
	if math.IsNaN(scrollY) {
		scrollY = t.start
	}

	if t.cached && t.cachedPos == scrollY && (t.desc.Mode == ModeScrub || t.cachedRaw >= t.maxSeen) {
		return t.progress(t.cachedRaw, t.cachedOut), nil
	}

	r := t.raw(scrollY)
	if t.desc.Mode == ModeLatch {
		r = math.Max(r, t.maxSeen)
		t.maxSeen = r
	}

	out := make([]float64, len(t.desc.Properties))
	for i := range t.desc.Properties {
		out[i] = t.desc.Properties[i].Easing(r)
	}
	t.cached = true
	t.cachedPos = scrollY
	t.cachedRaw = r
	t.cachedOut = out
	return t.progress(r, out), nil
}

func (t *ScrollTimeline) progress(raw float64, eased []float64) Progress {
	return Progress{Raw: raw, props: t.desc.Properties, eased: eased}
}

// Dispose releases the timeline. Further Sample calls fail with
// ErrDisposed. Safe to call more than once.
func (t *ScrollTimeline) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.cachedOut = nil
	t.desc.Properties = nil
}

// IsDisposed returns true if this timeline has been disposed.
func (t *ScrollTimeline) IsDisposed() bool {
	return t.disposed
}
