package reveal

// Region is a document rectangle tracked for intersection with the viewport.
// Only the vertical extent matters for visibility; the host supplies the
// geometry on mount and again whenever layout changes.
type Region struct {
	// Identity
	ID   uint32
	Name string

	bounds    Span
	hasBounds bool
	disposed  bool
}

// NewRegion creates a region without geometry. Until SetBounds is called it
// never intersects the viewport.
func NewRegion(name string) *Region {
	return &Region{ID: nextHandleID(), Name: name}
}

// NewRegionAt creates a region occupying [top, top+height] in document
// coordinates.
func NewRegionAt(name string, top, height float64) *Region {
	r := NewRegion(name)
	r.SetBounds(top, top+height)
	return r
}

// SetBounds replaces the region's geometry. Call it after every layout pass
// that can move the region, typically from a Section layout hook.
func (r *Region) SetBounds(top, bottom float64) {
	if r.disposed {
		return
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	r.bounds = Span{Top: top, Bottom: bottom}
	r.hasBounds = true
}

// ClearBounds drops the region's geometry, e.g. while its element is
// detached from layout.
func (r *Region) ClearBounds() {
	r.bounds = Span{}
	r.hasBounds = false
}

// Bounds returns the region's geometry and whether it has any.
func (r *Region) Bounds() (Span, bool) {
	return r.bounds, r.hasBounds
}

// VisibleFraction returns the share of the region's height that lies inside
// the viewport, in [0, 1]. Regions without geometry, disposed regions and
// empty viewports report zero. A zero-height region reports 1 when it lies
// strictly inside the viewport.
func (r *Region) VisibleFraction(v Viewport) float64 {
	if r.disposed || !r.hasBounds || v.Height <= 0 {
		return 0
	}
	view := v.Span()
	h := r.bounds.Height()
	if h == 0 {
		if r.bounds.Top > view.Top && r.bounds.Top < view.Bottom {
			return 1
		}
		return 0
	}
	return clamp01(r.bounds.Overlap(view) / h)
}

// edgeY returns the document Y of the given edge.
func (r *Region) edgeY(e Edge) float64 {
	if e == EdgeBottom {
		return r.bounds.Bottom
	}
	return r.bounds.Top
}

// Dispose marks the region as gone. Watchers observing it stop reporting
// intersections and entrances targeting it finish immediately.
func (r *Region) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.ID = 0
	r.bounds = Span{}
	r.hasBounds = false
}

// IsDisposed returns true if this region has been disposed.
func (r *Region) IsDisposed() bool {
	return r.disposed
}
