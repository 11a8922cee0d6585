package reveal

import "math"

// Span is a vertical extent in document coordinates. The origin is the top of
// the document, with Y increasing downward.
type Span struct {
	Top, Bottom float64
}

// Height returns the span's extent. Inverted spans report zero.
func (s Span) Height() float64 {
	if s.Bottom < s.Top {
		return 0
	}
	return s.Bottom - s.Top
}

// Contains reports whether y lies inside the span. Edges are inside.
func (s Span) Contains(y float64) bool {
	return y >= s.Top && y <= s.Bottom
}

// Overlap returns the length of the intersection of s and other. Spans that
// only share an edge overlap by zero.
func (s Span) Overlap(other Span) float64 {
	lo := math.Max(s.Top, other.Top)
	hi := math.Min(s.Bottom, other.Bottom)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Viewport is the visible window onto the document. ScrollY is the shared
// scroll position; components receive Viewport by value and never write it
// back.
type Viewport struct {
	ScrollY       float64
	Width, Height float64
}

// Span returns the document extent currently on screen.
func (v Viewport) Span() Span {
	return Span{Top: v.ScrollY, Bottom: v.ScrollY + v.Height}
}

// sameSize reports whether v and other have identical dimensions.
func (v Viewport) sameSize(other Viewport) bool {
	return v.Width == other.Width && v.Height == other.Height
}

// Edge selects the top or bottom of a region or the viewport.
type Edge uint8

const (
	EdgeTop    Edge = iota // upper edge (smaller Y)
	EdgeBottom             // lower edge (larger Y)
)

// String returns "top" or "bottom".
func (e Edge) String() string {
	if e == EdgeBottom {
		return "bottom"
	}
	return "top"
}

// EventType identifies a kind of engine event delivered to an EventSink.
type EventType uint8

const (
	EventEnter         EventType = iota // a watcher's region entered the viewport
	EventCountTick                      // a count-up emitted a tick
	EventCycle                          // an auto-cycler changed its active index
	EventMediaLoaded                    // a lazy media load completed
	EventMediaError                     // a lazy media load failed
	EventEntranceDone                   // an entrance animation finished
)

var eventTypeNames = [...]string{
	EventEnter:        "enter",
	EventCountTick:    "count-tick",
	EventCycle:        "cycle",
	EventMediaLoaded:  "media-loaded",
	EventMediaError:   "media-error",
	EventEntranceDone: "entrance-done",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event carries engine state changes to an EventSink.
type Event struct {
	Type     EventType
	Section  string
	Region   string
	RegionID uint32
	// Index is the active index for EventCycle and the tick number for
	// EventCountTick.
	Index int
	// Value is the displayed number for EventCountTick.
	Value float64
	// URL is set for media events.
	URL string
	Err error
}

// EventSink receives engine events. When set on a Section, every callback the
// section fires is mirrored to the sink on the frame thread.
type EventSink interface {
	EmitEvent(event Event)
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp01 restricts v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
