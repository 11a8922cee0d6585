package reveal

// injectedKind distinguishes synthetic host events.
type injectedKind uint8

const (
	injectScroll injectedKind = iota
	injectScrollBy
	injectResize
)

// injectedEvent is a single synthetic host event.
type injectedEvent struct {
	kind          injectedKind
	y             float64
	width, height float64
}

// InjectScroll queues an absolute scroll. Injected events are consumed one
// per Frame, before the frame's viewport is applied, exactly as if the host
// had called OnScroll.
func (p *Page) InjectScroll(y float64) {
	p.injectQueue = append(p.injectQueue, injectedEvent{kind: injectScroll, y: y})
}

// InjectScrollBy queues a relative scroll.
func (p *Page) InjectScrollBy(dy float64) {
	p.injectQueue = append(p.injectQueue, injectedEvent{kind: injectScrollBy, y: dy})
}

// InjectResize queues a viewport resize.
func (p *Page) InjectResize(width, height float64) {
	p.injectQueue = append(p.injectQueue, injectedEvent{kind: injectResize, width: width, height: height})
}

// InjectSweep queues a scroll from `from` to `to` spread evenly over frames
// frames, the last landing exactly on `to`. Minimum frames is 1.
func (p *Page) InjectSweep(from, to float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		p.InjectScroll(from + (to-from)*t)
	}
}

// PendingInjections returns the number of queued synthetic events.
func (p *Page) PendingInjections() int {
	return len(p.injectQueue)
}

// processInjected pops one event from the queue and applies it. Returns true
// if an event was consumed.
func (p *Page) processInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	switch evt.kind {
	case injectScroll:
		p.OnScroll(evt.y)
	case injectScrollBy:
		p.ScrollBy(evt.y)
	case injectResize:
		p.OnResize(evt.width, evt.height)
	}
	return true
}
