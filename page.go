package reveal

import (
	"time"

	"go.uber.org/zap"
)

// PageConfig configures a Page. Zero fields take defaults.
type PageConfig struct {
	// Viewport is the initial scroll position and size.
	Viewport Viewport
	// DocumentHeight bounds scrolling; zero means unbounded.
	DocumentHeight float64
	// Logger defaults to the package logger (see SetLogger).
	Logger *zap.Logger
	// Sink is handed to every section created by the page.
	Sink EventSink
}

// Page is the top-level object that owns the scroll signal and the sections
// reading it. Host input (OnScroll, OnResize, injected events, scripts,
// smooth scrolls) only records pending state; Frame applies it and updates
// every section exactly once, so watchers and timelines are evaluated at
// most once per frame however many events arrived.
type Page struct {
	sections []*Section
	scratch  []*Section

	viewport  Viewport // applied on the last Frame
	pending   Viewport // accumulated since the last Frame
	dirty     bool
	docHeight float64

	scrollTween *scrollAnim
	injectQueue []injectedEvent
	runner      *ScriptRunner
	updateFunc  func(dt time.Duration)

	log      *zap.Logger
	sink     EventSink
	frames   int
	disposed bool
}

// NewPage creates a page with no sections.
func NewPage(cfg PageConfig) *Page {
	l := cfg.Logger
	if l == nil {
		l = logger
	}
	p := &Page{
		viewport:  cfg.Viewport,
		pending:   cfg.Viewport,
		docHeight: cfg.DocumentHeight,
		log:       l,
		sink:      cfg.Sink,
		dirty:     true,
	}
	p.pending.ScrollY = p.clampScrollY(p.pending.ScrollY, p.pending.Height)
	p.viewport.ScrollY = p.pending.ScrollY
	return p
}

// NewSection creates a section that shares the page's logger and sink and
// adds it to the page.
func (p *Page) NewSection(name string) *Section {
	s := NewSection(SectionConfig{
		Name:     name,
		Viewport: p.pending,
		Logger:   p.log,
		Sink:     p.sink,
	})
	if p.disposed {
		s.Dispose()
		return s
	}
	p.sections = append(p.sections, s)
	return s
}

// RemoveSection disposes s and removes it from the page.
func (p *Page) RemoveSection(s *Section) {
	for i, c := range p.sections {
		if c == s {
			copy(p.sections[i:], p.sections[i+1:])
			p.sections[len(p.sections)-1] = nil
			p.sections = p.sections[:len(p.sections)-1]
			break
		}
	}
	s.Dispose()
}

// Sections returns the page's live sections. The returned slice MUST NOT be
// mutated.
func (p *Page) Sections() []*Section {
	return p.sections
}

// Section returns the live section with the given name, or nil.
func (p *Page) Section(name string) *Section {
	for _, s := range p.sections {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Viewport returns the viewport applied on the last Frame. It is a copy;
// the page's scroll signal cannot be changed through it.
func (p *Page) Viewport() Viewport {
	return p.viewport
}

// Frames returns the number of frames run.
func (p *Page) Frames() int {
	return p.frames
}

// SetUpdateFunc registers fn to run at the end of every Frame, after all
// sections have been updated.
func (p *Page) SetUpdateFunc(fn func(dt time.Duration)) {
	p.updateFunc = fn
}

// Frame runs one tick: the script runner and one injected event, the smooth
// scroll, clamping, then every section in creation order. Sections that fail
// are logged and dropped; the rest keep animating.
func (p *Page) Frame(dt time.Duration) {
	if p.disposed {
		return
	}
	p.frames++

	if p.runner != nil {
		p.runner.step(p)
	}
	p.processInjected()
	p.advanceScroll(float32(dt.Seconds()))

	if p.dirty {
		p.pending.ScrollY = p.clampScrollY(p.pending.ScrollY, p.pending.Height)
		p.viewport = p.pending
		p.dirty = false
	}

	var stats frameStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	// Iterate a copy: callbacks may add, remove or dispose sections. New
	// sections run from the next frame.
	p.scratch = append(p.scratch[:0], p.sections...)
	for _, s := range p.scratch {
		if p.disposed {
			break
		}
		if err := s.Update(p.viewport, dt); err != nil {
			p.log.Error("section dropped", zap.String("section", s.name), zap.Error(err))
			continue
		}
		if globalDebug && !s.IsDisposed() {
			stats.watchers += len(s.watchers)
			stats.timers += s.activeTimers()
			stats.pendingLoads += s.pendingLoads()
		}
	}
	clear(p.scratch)
	if p.disposed {
		return
	}
	live := p.sections[:0]
	for _, s := range p.sections {
		if !s.IsDisposed() {
			live = append(live, s)
		}
	}
	clear(p.sections[len(live):])
	p.sections = live

	if p.updateFunc != nil {
		p.updateFunc(dt)
	}

	if globalDebug {
		stats.sections = len(p.sections)
		stats.updateTime = time.Since(t0)
		p.debugLog(stats)
	}
}

// Dispose disposes every section. Frame becomes a no-op. Safe to call more
// than once.
func (p *Page) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	for _, s := range p.sections {
		s.Dispose()
	}
	p.sections = nil
	p.injectQueue = nil
	p.runner = nil
	p.scrollTween = nil
	p.updateFunc = nil
}

// IsDisposed returns true if this page has been disposed.
func (p *Page) IsDisposed() bool {
	return p.disposed
}
