package reveal

import "fmt"

// Parallax converts scroll position into a translation for one element. Its
// timeline spans the element's whole time on screen: from the region's top
// entering at the bottom of the viewport to its bottom leaving at the top.
type Parallax struct {
	region   *Region
	speed    float64
	timeline *ScrollTimeline
}

// NewParallax creates a parallax driver for region moving at speed times the
// scroll distance. Distinct speeds give distinct depth layers.
func NewParallax(region *Region, speed, viewportHeight float64) (*Parallax, error) {
	if region == nil {
		return nil, fmt.Errorf("create parallax: %w", ErrNoGeometry)
	}
	desc := TimelineDescriptor{
		Mode:  ModeScrub,
		Start: Anchor(region, EdgeTop, EdgeBottom),
		End:   Anchor(region, EdgeBottom, EdgeTop),
	}
	t, err := NewScrollTimeline(desc, viewportHeight)
	if err != nil {
		return nil, fmt.Errorf("create parallax for %q: %w", region.Name, err)
	}
	return &Parallax{region: region, speed: speed, timeline: t}, nil
}

// Offset returns the translation at scrollY:
// speed * (end - start) * progress. It is continuous and reversible.
func (p *Parallax) Offset(scrollY float64) (float64, error) {
	pr, err := p.timeline.Sample(scrollY)
	if err != nil {
		return 0, err
	}
	start, end := p.timeline.Range()
	return p.speed * (end - start) * pr.Raw, nil
}

// Speed returns the speed coefficient.
func (p *Parallax) Speed() float64 {
	return p.speed
}

// Timeline returns the underlying scrub timeline.
func (p *Parallax) Timeline() *ScrollTimeline {
	return p.timeline
}

// Resize re-resolves the range after the viewport or region geometry changed.
func (p *Parallax) Resize(viewportHeight float64) error {
	return p.timeline.Resize(viewportHeight)
}

// Dispose releases the driver. Safe to call more than once.
func (p *Parallax) Dispose() {
	p.timeline.Dispose()
	p.region = nil
}
