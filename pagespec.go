package reveal

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// PageSpec is a declarative page description, read from YAML or JSON.
//
//	viewport: {width: 1280, height: 800}
//	documentHeight: 5200
//	sections:
//	  - name: stats
//	    regions:
//	      - {name: stats, top: 1600, height: 400}
//	    watchers:
//	      - {name: stats, region: stats, threshold: 0.3}
//	    countUps:
//	      - {name: students, gate: stats, target: 1500, duration: 2s, steps: 60}
type PageSpec struct {
	Viewport       ViewportSpec  `yaml:"viewport"`
	DocumentHeight float64       `yaml:"documentHeight"`
	Sections       []SectionSpec `yaml:"sections"`
}

// ViewportSpec is the initial viewport of a PageSpec.
type ViewportSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	ScrollY float64 `yaml:"scrollY"`
}

// SectionSpec describes one section.
type SectionSpec struct {
	Name      string         `yaml:"name"`
	Regions   []RegionSpec   `yaml:"regions"`
	Watchers  []WatcherSpec  `yaml:"watchers"`
	Timelines []TimelineSpec `yaml:"timelines"`
	Staggers  []StaggerSpec  `yaml:"staggers"`
	Parallax  []ParallaxSpec `yaml:"parallax"`
	CountUps  []CountUpSpec  `yaml:"countUps"`
	Cyclers   []CyclerSpec   `yaml:"cyclers"`
	Media     []MediaSpec    `yaml:"media"`
	Entrances []EntranceSpec `yaml:"entrances"`
}

// RegionSpec places a region in document coordinates.
type RegionSpec struct {
	Name   string  `yaml:"name"`
	Top    float64 `yaml:"top"`
	Height float64 `yaml:"height"`
}

// WatcherSpec attaches a named watcher to a region.
type WatcherSpec struct {
	Name      string  `yaml:"name"`
	Region    string  `yaml:"region"`
	Threshold float64 `yaml:"threshold"`
}

// OffsetSpec is an absolute offset when Region is empty, otherwise an anchor.
type OffsetSpec struct {
	At           float64 `yaml:"at"`
	Region       string  `yaml:"region"`
	RegionEdge   string  `yaml:"regionEdge"`
	ViewportEdge string  `yaml:"viewportEdge"`
}

// PropertySpec is one animated property.
type PropertySpec struct {
	Name   string  `yaml:"name"`
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Easing string  `yaml:"easing"`
}

// TimelineSpec describes a scroll timeline.
type TimelineSpec struct {
	Name       string         `yaml:"name"`
	Mode       string         `yaml:"mode"`
	Start      OffsetSpec     `yaml:"start"`
	End        OffsetSpec     `yaml:"end"`
	Properties []PropertySpec `yaml:"properties"`
}

// StaggerSpec describes a stagger group built from an inline timeline.
type StaggerSpec struct {
	Name     string       `yaml:"name"`
	Timeline TimelineSpec `yaml:"timeline"`
	Count    int          `yaml:"count"`
	Delay    float64      `yaml:"delay"`
}

// ParallaxSpec describes a parallax layer.
type ParallaxSpec struct {
	Name   string  `yaml:"name"`
	Region string  `yaml:"region"`
	Speed  float64 `yaml:"speed"`
}

// CountUpSpec describes a gated count-up.
type CountUpSpec struct {
	Name     string        `yaml:"name"`
	Gate     string        `yaml:"gate"`
	Target   float64       `yaml:"target"`
	Duration time.Duration `yaml:"duration"`
	Steps    int           `yaml:"steps"`
}

// CyclerSpec describes a gated auto-cycler.
type CyclerSpec struct {
	Name     string        `yaml:"name"`
	Gate     string        `yaml:"gate"`
	Count    int           `yaml:"count"`
	Interval time.Duration `yaml:"interval"`
}

// MediaSpec describes lazily loaded media.
type MediaSpec struct {
	Name   string `yaml:"name"`
	Region string `yaml:"region"`
	URL    string `yaml:"url"`
}

// EntranceSpec describes a gated entrance, staggered when Count > 1.
type EntranceSpec struct {
	Name     string        `yaml:"name"`
	Gate     string        `yaml:"gate"`
	Count    int           `yaml:"count"`
	Stagger  time.Duration `yaml:"stagger"`
	Duration float32       `yaml:"duration"`
	Easing   string        `yaml:"easing"`
	Rise     float64       `yaml:"rise"`
}

// LoadPageSpec parses a YAML or JSON page description.
func LoadPageSpec(data []byte) (*PageSpec, error) {
	var spec PageSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse page spec: %w", err)
	}
	if len(spec.Sections) == 0 {
		return nil, fmt.Errorf("parse page spec: no sections")
	}
	return &spec, nil
}

// Bindings gives named access to the handles BuildPage created. Names are
// qualified by section: "stats/students".
type Bindings struct {
	Regions   map[string]*Region
	Watchers  map[string]*Watcher
	Timelines map[string]*ScrollTimeline
	Staggers  map[string][]*ScrollTimeline
	Parallax  map[string]*Parallax
	CountUps  map[string]*CountUp
	Cyclers   map[string]*AutoCycler
	Media     map[string]*LazyMedia
	Entrances map[string][]*Entrance
}

func newBindings() *Bindings {
	return &Bindings{
		Regions:   make(map[string]*Region),
		Watchers:  make(map[string]*Watcher),
		Timelines: make(map[string]*ScrollTimeline),
		Staggers:  make(map[string][]*ScrollTimeline),
		Parallax:  make(map[string]*Parallax),
		CountUps:  make(map[string]*CountUp),
		Cyclers:   make(map[string]*AutoCycler),
		Media:     make(map[string]*LazyMedia),
		Entrances: make(map[string][]*Entrance),
	}
}

func qualify(section, name string) string {
	return section + "/" + name
}

// BuildPage creates a Page from spec. Media handles use loader, which may be
// nil when the spec has no media. On error nothing is left running.
func BuildPage(spec *PageSpec, loader Loader, cfg PageConfig) (*Page, *Bindings, error) {
	cfg.Viewport = Viewport{
		Width:   spec.Viewport.Width,
		Height:  spec.Viewport.Height,
		ScrollY: spec.Viewport.ScrollY,
	}
	cfg.DocumentHeight = spec.DocumentHeight
	page := NewPage(cfg)
	b := newBindings()
	for _, ss := range spec.Sections {
		if err := buildSection(page, ss, loader, b); err != nil {
			page.Dispose()
			return nil, nil, fmt.Errorf("build section %q: %w", ss.Name, err)
		}
	}
	page.log.Debug("page built", zap.Int("sections", len(spec.Sections)))
	return page, b, nil
}

func buildSection(page *Page, ss SectionSpec, loader Loader, b *Bindings) error {
	s := page.NewSection(ss.Name)
	regions := make(map[string]*Region, len(ss.Regions))
	for _, rs := range ss.Regions {
		r := NewRegionAt(rs.Name, rs.Top, rs.Height)
		regions[rs.Name] = r
		b.Regions[qualify(ss.Name, rs.Name)] = r
	}
	region := func(name string) (*Region, error) {
		r, ok := regions[name]
		if !ok {
			return nil, fmt.Errorf("unknown region %q", name)
		}
		return r, nil
	}

	watchers := make(map[string]*Watcher, len(ss.Watchers))
	for _, ws := range ss.Watchers {
		r, err := region(ws.Region)
		if err != nil {
			return err
		}
		w, err := s.WatchVisibility(r, ws.Threshold)
		if err != nil {
			return err
		}
		name := ws.Name
		if name == "" {
			name = ws.Region
		}
		watchers[name] = w
		b.Watchers[qualify(ss.Name, name)] = w
	}
	gate := func(name string) (*Watcher, error) {
		if name == "" {
			return nil, nil
		}
		w, ok := watchers[name]
		if !ok {
			return nil, fmt.Errorf("unknown gate %q", name)
		}
		return w, nil
	}

	for _, ts := range ss.Timelines {
		desc, err := ts.descriptor(region)
		if err != nil {
			return fmt.Errorf("timeline %q: %w", ts.Name, err)
		}
		t, err := s.ScrollTimeline(desc)
		if err != nil {
			return fmt.Errorf("timeline %q: %w", ts.Name, err)
		}
		b.Timelines[qualify(ss.Name, ts.Name)] = t
	}
	for _, st := range ss.Staggers {
		desc, err := st.Timeline.descriptor(region)
		if err != nil {
			return fmt.Errorf("stagger %q: %w", st.Name, err)
		}
		ts, err := s.Stagger(desc, st.Count, st.Delay)
		if err != nil {
			return fmt.Errorf("stagger %q: %w", st.Name, err)
		}
		b.Staggers[qualify(ss.Name, st.Name)] = ts
	}
	for _, ps := range ss.Parallax {
		r, err := region(ps.Region)
		if err != nil {
			return err
		}
		p, err := s.Parallax(r, ps.Speed)
		if err != nil {
			return err
		}
		b.Parallax[qualify(ss.Name, nameOr(ps.Name, ps.Region))] = p
	}
	for _, cs := range ss.CountUps {
		g, err := gate(cs.Gate)
		if err != nil {
			return err
		}
		c, err := s.CountUp(g, cs.Target, cs.Duration, cs.Steps, nil)
		if err != nil {
			return fmt.Errorf("count-up %q: %w", cs.Name, err)
		}
		b.CountUps[qualify(ss.Name, cs.Name)] = c
	}
	for _, cs := range ss.Cyclers {
		g, err := gate(cs.Gate)
		if err != nil {
			return err
		}
		c, err := s.AutoCycle(g, cs.Count, cs.Interval, nil, nil)
		if err != nil {
			return fmt.Errorf("cycler %q: %w", cs.Name, err)
		}
		b.Cyclers[qualify(ss.Name, cs.Name)] = c
	}
	for _, ms := range ss.Media {
		r, err := region(ms.Region)
		if err != nil {
			return err
		}
		m, err := s.LazyLoad(ms.URL, r, loader)
		if err != nil {
			return err
		}
		b.Media[qualify(ss.Name, nameOr(ms.Name, ms.Region))] = m
	}
	for _, es := range ss.Entrances {
		g, err := gate(es.Gate)
		if err != nil {
			return err
		}
		cfg := DefaultEntrance
		if es.Duration > 0 {
			cfg.Duration = es.Duration
		}
		if es.Rise != 0 {
			cfg.From.OffsetY = es.Rise
		}
		fn, err := tweenFuncByName(es.Easing)
		if err != nil {
			return fmt.Errorf("entrance %q: %w", es.Name, err)
		}
		if es.Easing != "" {
			cfg.Ease = fn
		}
		count := es.Count
		if count < 1 {
			count = 1
		}
		ents, err := s.EntranceStagger(g, count, es.Stagger, cfg)
		if err != nil {
			return fmt.Errorf("entrance %q: %w", es.Name, err)
		}
		b.Entrances[qualify(ss.Name, es.Name)] = ents
	}
	return nil
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func (ts TimelineSpec) descriptor(region func(string) (*Region, error)) (TimelineDescriptor, error) {
	mode, err := ParseMode(ts.Mode)
	if err != nil {
		return TimelineDescriptor{}, err
	}
	start, err := ts.Start.offset(region)
	if err != nil {
		return TimelineDescriptor{}, err
	}
	end, err := ts.End.offset(region)
	if err != nil {
		return TimelineDescriptor{}, err
	}
	desc := TimelineDescriptor{Mode: mode, Start: start, End: end}
	for _, ps := range ts.Properties {
		e, err := EasingByName(ps.Easing)
		if err != nil {
			return TimelineDescriptor{}, fmt.Errorf("property %q: %w", ps.Name, err)
		}
		desc.Properties = append(desc.Properties, Property{Name: ps.Name, From: ps.From, To: ps.To, Easing: e})
	}
	return desc, nil
}

func (o OffsetSpec) offset(region func(string) (*Region, error)) (Offset, error) {
	if o.Region == "" {
		return Abs(o.At), nil
	}
	r, err := region(o.Region)
	if err != nil {
		return Offset{}, err
	}
	re, err := parseEdge(o.RegionEdge)
	if err != nil {
		return Offset{}, err
	}
	ve, err := parseEdge(o.ViewportEdge)
	if err != nil {
		return Offset{}, err
	}
	return Anchor(r, re, ve).Shift(o.At), nil
}

func parseEdge(s string) (Edge, error) {
	switch s {
	case "", "top":
		return EdgeTop, nil
	case "bottom":
		return EdgeBottom, nil
	}
	return EdgeTop, fmt.Errorf("unknown edge %q", s)
}
