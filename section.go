package reveal

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SectionConfig configures a Section. Zero fields take defaults.
type SectionConfig struct {
	Name string
	// Viewport is the viewport in effect when handles are created before the
	// first Update. Region-anchored timelines resolve against its height.
	Viewport Viewport
	// Logger defaults to the package logger (see SetLogger).
	Logger *zap.Logger
	// Sink, when set, receives an Event for every callback the section fires.
	Sink EventSink
}

type gatedCountUp struct {
	gate *Watcher
	c    *CountUp
}

type gatedCycler struct {
	gate   *Watcher
	c      *AutoCycler
	pause  func() bool
	paused bool
}

type gatedMedia struct {
	gate *Watcher
	m    *LazyMedia
}

type gatedEntrance struct {
	gate *Watcher
	e    *Entrance
}

// Section composes the engine's primitives for one page section and owns
// their lifecycle. Every handle created through a Section is released by its
// Dispose, after which no callback fires.
//
// Update runs one frame in a fixed order: layout hooks (on size change),
// timeline re-resolution, every watcher, pause signals, running timers,
// gate resolution (starting count-ups, cyclers, loads and entrances whose
// gate has entered), and finally load delivery. A region therefore cannot
// be "just entered" without its gated effects starting on the same frame.
type Section struct {
	name string
	log  *zap.Logger
	sink EventSink

	viewport Viewport
	sized    bool
	relayout bool
	layout   []func(Viewport)

	watchers   []*Watcher
	timelines  []*ScrollTimeline
	parallaxes []*Parallax
	countUps   []gatedCountUp
	cyclers    []gatedCycler
	media      []gatedMedia
	entrances  []gatedEntrance

	disposed bool
	failed   error
}

// NewSection creates an empty section.
func NewSection(cfg SectionConfig) *Section {
	l := cfg.Logger
	if l == nil {
		l = logger
	}
	return &Section{
		name:     cfg.Name,
		log:      l.With(zap.String("section", cfg.Name)),
		sink:     cfg.Sink,
		viewport: cfg.Viewport,
	}
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Viewport returns the viewport seen by the last Update.
func (s *Section) Viewport() Viewport {
	return s.viewport
}

// Err returns the error that failed the section, if any.
func (s *Section) Err() error {
	return s.failed
}

// IsDisposed returns true once the section has been disposed or failed.
func (s *Section) IsDisposed() bool {
	return s.disposed
}

func (s *Section) checkAlive(op string) error {
	if s.disposed {
		return reportDisposed(s.log, op, "section", fmt.Sprintf("name was %q", s.name))
	}
	return nil
}

func (s *Section) emit(e Event) {
	if s.sink == nil || s.disposed {
		return
	}
	e.Section = s.name
	s.sink.EmitEvent(e)
}

// OnLayout registers fn to run at the start of any Update whose viewport
// size differs from the previous one, and on the first Update. Hosts
// recompute region geometry here.
func (s *Section) OnLayout(fn func(Viewport)) {
	if s.disposed || fn == nil {
		return
	}
	s.layout = append(s.layout, fn)
}

// Relayout forces layout hooks and timeline re-resolution on the next
// Update, for content changes that move regions without a resize.
func (s *Section) Relayout() {
	s.relayout = true
}

// --- Handle constructors ---

// WatchVisibility attaches a watcher to region with the given threshold.
func (s *Section) WatchVisibility(region *Region, threshold float64) (*Watcher, error) {
	if err := s.checkAlive("WatchVisibility"); err != nil {
		return nil, err
	}
	w := NewWatcher(region, threshold)
	s.watchers = append(s.watchers, w)
	return w, nil
}

// ScrollTimeline creates a timeline owned by the section.
func (s *Section) ScrollTimeline(desc TimelineDescriptor) (*ScrollTimeline, error) {
	if err := s.checkAlive("ScrollTimeline"); err != nil {
		return nil, err
	}
	t, err := NewScrollTimeline(desc, s.viewport.Height)
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", s.name, err)
	}
	s.timelines = append(s.timelines, t)
	return t, nil
}

// Stagger creates count timelines from base, each shifted by delay scroll
// units from the previous one.
func (s *Section) Stagger(base TimelineDescriptor, count int, delay float64) ([]*ScrollTimeline, error) {
	if err := s.checkAlive("Stagger"); err != nil {
		return nil, err
	}
	ts, err := NewStagger(base, count, delay, s.viewport.Height)
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", s.name, err)
	}
	s.timelines = append(s.timelines, ts...)
	return ts, nil
}

// Parallax creates a parallax driver for region.
func (s *Section) Parallax(region *Region, speed float64) (*Parallax, error) {
	if err := s.checkAlive("Parallax"); err != nil {
		return nil, err
	}
	p, err := NewParallax(region, speed, s.viewport.Height)
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", s.name, err)
	}
	s.parallaxes = append(s.parallaxes, p)
	return p, nil
}

// CountUp creates a count-up that starts the first frame gate has entered,
// and never restarts. A nil gate starts on the next Update.
func (s *Section) CountUp(gate *Watcher, target float64, duration time.Duration, steps int, onTick func(k int, value float64)) (*CountUp, error) {
	if err := s.checkAlive("CountUp"); err != nil {
		return nil, err
	}
	regionName := gateRegionName(gate)
	c, err := NewCountUp(target, duration, steps, func(k int, v float64) {
		if onTick != nil {
			onTick(k, v)
		}
		s.emit(Event{Type: EventCountTick, Region: regionName, Index: k, Value: v})
	})
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", s.name, err)
	}
	s.countUps = append(s.countUps, gatedCountUp{gate: gate, c: c})
	return c, nil
}

// AutoCycle creates a cycler that starts the first frame gate has entered.
// When pause is non-nil it is polled every frame; true pauses the cycler and
// false resumes it (e.g. a hover signal).
func (s *Section) AutoCycle(gate *Watcher, count int, interval time.Duration, pause func() bool, onChange func(index int)) (*AutoCycler, error) {
	if err := s.checkAlive("AutoCycle"); err != nil {
		return nil, err
	}
	regionName := gateRegionName(gate)
	c, err := NewAutoCycler(count, interval, func(i int) {
		if onChange != nil {
			onChange(i)
		}
		s.emit(Event{Type: EventCycle, Region: regionName, Index: i})
	})
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", s.name, err)
	}
	s.cyclers = append(s.cyclers, gatedCycler{gate: gate, c: c, pause: pause})
	return c, nil
}

// LazyLoad creates media that is requested the first time region has any
// part on screen. Register OnLoaded/OnError on the returned handle.
func (s *Section) LazyLoad(url string, region *Region, loader Loader) (*LazyMedia, error) {
	if err := s.checkAlive("LazyLoad"); err != nil {
		return nil, err
	}
	gate := NewWatcher(region, 0)
	s.watchers = append(s.watchers, gate)
	m := NewLazyMedia(url, loader)
	s.media = append(s.media, gatedMedia{gate: gate, m: m})
	return m, nil
}

// Entrance creates a one-shot entrance animation started by gate.
func (s *Section) Entrance(gate *Watcher, cfg EntranceConfig) (*Entrance, error) {
	if err := s.checkAlive("Entrance"); err != nil {
		return nil, err
	}
	var target *Region
	if gate != nil {
		target = gate.Region()
	}
	e := NewEntrance(target, cfg)
	s.entrances = append(s.entrances, gatedEntrance{gate: gate, e: e})
	return e, nil
}

// EntranceStagger creates count entrances started together by gate, entrance
// i delayed by i*delay beyond cfg.Delay. Siblings finish in index order.
func (s *Section) EntranceStagger(gate *Watcher, count int, delay time.Duration, cfg EntranceConfig) ([]*Entrance, error) {
	if err := s.checkAlive("EntranceStagger"); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("section %q entrance stagger of %d: %w", s.name, count, ErrInvalidCount)
	}
	out := make([]*Entrance, count)
	for i := range out {
		c := cfg
		c.Delay = cfg.Delay + time.Duration(i)*delay
		e, err := s.Entrance(gate, c)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func gateRegionName(gate *Watcher) string {
	if gate == nil || gate.Region() == nil {
		return ""
	}
	return gate.Region().Name
}

func gateOpen(gate *Watcher) bool {
	return gate == nil || gate.Entered()
}

// --- Frame ---

// Update runs one frame against viewport v. dt is the time since the previous
// frame. A panic inside the frame (typically from a user callback) fails the
// section: it is logged, the section is disposed, and the error is returned
// so the caller can keep driving sibling sections. In debug mode the panic
// propagates.
func (s *Section) Update(v Viewport, dt time.Duration) (err error) {
	if s.disposed {
		return nil
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if globalDebug {
			panic(r)
		}
		s.failed = fmt.Errorf("section %q: panic during update: %v", s.name, r)
		s.log.Error("section failed", zap.Any("panic", r))
		s.Dispose()
		err = s.failed
	}()

	resized := !s.sized || s.relayout || !v.sameSize(s.viewport)
	s.viewport = v
	s.sized = true
	if resized {
		s.relayout = false
		s.applyLayout(v)
	}

	for _, w := range s.watchers {
		if s.disposed {
			return nil
		}
		var name string
		var id uint32
		if r := w.Region(); r != nil {
			name, id = r.Name, r.ID
		}
		if w.Update(v) {
			s.emit(Event{Type: EventEnter, Region: name, RegionID: id})
		}
	}

	s.pollPauseSignals()
	s.advanceTimers(dt)
	s.resolveGates()
	s.deliverMedia()
	return nil
}

func (s *Section) applyLayout(v Viewport) {
	for _, fn := range s.layout {
		if s.disposed {
			return
		}
		fn(v)
	}
	for _, t := range s.timelines {
		if t.IsDisposed() {
			continue
		}
		if err := t.Resize(v.Height); err != nil {
			s.log.Warn("timeline resize failed", zap.Uint32("timeline", t.ID), zap.Error(err))
		}
	}
	for _, p := range s.parallaxes {
		if p.Timeline().IsDisposed() {
			continue
		}
		if err := p.Resize(v.Height); err != nil {
			s.log.Warn("parallax resize failed", zap.Error(err))
		}
	}
}

func (s *Section) pollPauseSignals() {
	for i := range s.cyclers {
		gc := &s.cyclers[i]
		if gc.pause == nil || s.disposed {
			continue
		}
		p := gc.pause()
		if p == gc.paused {
			continue
		}
		gc.paused = p
		if p {
			gc.c.Pause()
		} else {
			gc.c.Resume()
		}
	}
}

// advanceTimers advances only timers started on earlier frames.
func (s *Section) advanceTimers(dt time.Duration) {
	for _, gc := range s.countUps {
		if s.disposed {
			return
		}
		gc.c.Update(dt)
	}
	for _, gc := range s.cyclers {
		if s.disposed {
			return
		}
		gc.c.Update(dt)
	}
	for _, ge := range s.entrances {
		if s.disposed {
			return
		}
		if ge.e.Update(dt) {
			s.emit(Event{Type: EventEntranceDone, Region: gateRegionName(ge.gate)})
		}
	}
}

func (s *Section) resolveGates() {
	for _, gc := range s.countUps {
		if s.disposed {
			return
		}
		if !gc.c.Started() && gateOpen(gc.gate) {
			if err := gc.c.Start(); err != nil {
				s.log.Debug("count-up not started", zap.Error(err))
			}
		}
	}
	for _, gc := range s.cyclers {
		if s.disposed {
			return
		}
		if !gc.c.Started() && gateOpen(gc.gate) {
			if err := gc.c.Start(); err != nil {
				s.log.Debug("auto-cycler not started", zap.Error(err))
			}
		}
	}
	for _, gm := range s.media {
		if s.disposed {
			return
		}
		if !gm.m.State().Requested && gateOpen(gm.gate) {
			if err := gm.m.Request(); err != nil {
				s.log.Debug("media not requested", zap.Error(err))
				continue
			}
			s.log.Debug("media requested", zap.String("url", gm.m.URL()))
		}
	}
	for _, ge := range s.entrances {
		if s.disposed {
			return
		}
		if !ge.e.Started() && gateOpen(ge.gate) {
			if err := ge.e.Start(); err != nil {
				s.log.Debug("entrance not started", zap.Error(err))
			}
		}
	}
}

func (s *Section) deliverMedia() {
	for _, gm := range s.media {
		if s.disposed {
			return
		}
		m := gm.m
		before := m.State()
		m.Update()
		after := m.State()
		switch {
		case after.Loaded && !before.Loaded:
			s.emit(Event{Type: EventMediaLoaded, Region: gateRegionName(gm.gate), URL: m.URL()})
		case after.Failed && !before.Failed:
			s.log.Warn("media load failed", zap.String("url", m.URL()), zap.Error(m.Err()))
			s.emit(Event{Type: EventMediaError, Region: gateRegionName(gm.gate), URL: m.URL(), Err: m.Err()})
		}
	}
}

// activeTimers counts started, unfinished count-ups, cyclers and entrances.
func (s *Section) activeTimers() int {
	n := 0
	for _, gc := range s.countUps {
		if gc.c.Started() && !gc.c.Done() {
			n++
		}
	}
	for _, gc := range s.cyclers {
		if gc.c.Started() {
			n++
		}
	}
	for _, ge := range s.entrances {
		if ge.e.Started() && !ge.e.Done {
			n++
		}
	}
	return n
}

func (s *Section) pendingLoads() int {
	n := 0
	for _, gm := range s.media {
		if gm.m.Pending() {
			n++
		}
	}
	return n
}

// Dispose detaches every watcher, disposes every timeline and media handle,
// and stops every timer created through the section. No callback fires after
// Dispose returns. Safe to call more than once.
func (s *Section) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, w := range s.watchers {
		w.Detach()
	}
	for _, t := range s.timelines {
		t.Dispose()
	}
	for _, p := range s.parallaxes {
		p.Dispose()
	}
	for _, gc := range s.countUps {
		gc.c.Stop()
	}
	for _, gc := range s.cyclers {
		gc.c.Stop()
	}
	for _, gm := range s.media {
		gm.m.Dispose()
	}
	for _, ge := range s.entrances {
		ge.e.Stop()
	}
	s.watchers = nil
	s.timelines = nil
	s.parallaxes = nil
	s.countUps = nil
	s.cyclers = nil
	s.media = nil
	s.entrances = nil
	s.layout = nil
	s.log.Debug("section disposed")
}
