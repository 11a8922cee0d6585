package reveal

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds an active smooth-scroll tween.
type scrollAnim struct {
	tween *gween.Tween
	done  bool
}

// OnScroll records a new scroll position from the host. Any number of calls
// between frames collapse into one evaluation on the next Frame. A direct
// scroll cancels a running smooth scroll.
func (p *Page) OnScroll(y float64) {
	p.pending.ScrollY = y
	p.scrollTween = nil
	p.dirty = true
}

// ScrollBy records a relative scroll from the host, e.g. a wheel delta.
func (p *Page) ScrollBy(dy float64) {
	p.OnScroll(p.pending.ScrollY + dy)
}

// OnResize records new viewport dimensions. Sections see the change on the
// next Frame, where their layout hooks run before any watcher is evaluated.
func (p *Page) OnResize(width, height float64) {
	p.pending.Width = width
	p.pending.Height = height
	p.dirty = true
}

// ScrollTo animates the scroll position to y over duration seconds.
func (p *Page) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	p.scrollTween = &scrollAnim{
		tween: gween.New(float32(p.pending.ScrollY), float32(p.clampScrollY(y, p.pending.Height)), duration, easeFn),
	}
}

// Scrolling reports whether a smooth scroll is in progress.
func (p *Page) Scrolling() bool {
	return p.scrollTween != nil
}

// SetDocumentHeight sets the scrollable extent. Zero disables clamping.
func (p *Page) SetDocumentHeight(h float64) {
	p.docHeight = h
	p.dirty = true
}

// DocumentHeight returns the scrollable extent.
func (p *Page) DocumentHeight() float64 {
	return p.docHeight
}

// advanceScroll steps the smooth-scroll tween by dt seconds.
func (p *Page) advanceScroll(dt float32) {
	if p.scrollTween == nil {
		return
	}
	val, done := p.scrollTween.tween.Update(dt)
	p.pending.ScrollY = float64(val)
	p.dirty = true
	if done {
		p.scrollTween = nil
	}
}

// clampScrollY restricts y so the viewport stays within the document. When
// the document is shorter than the viewport the page pins to the top.
func (p *Page) clampScrollY(y, viewportHeight float64) float64 {
	if math.IsNaN(y) {
		return 0
	}
	maxY := math.Inf(1)
	if p.docHeight > 0 {
		maxY = math.Max(0, p.docHeight-viewportHeight)
	}
	return math.Max(0, math.Min(y, maxY))
}
