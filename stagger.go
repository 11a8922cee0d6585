package reveal

import "fmt"

// NewStagger builds count timelines from base. Timeline i has both offsets
// shifted by i*delay scroll units, so siblings reach any given progress in
// index order. A negative delay reverses the order.
func NewStagger(base TimelineDescriptor, count int, delay, viewportHeight float64) ([]*ScrollTimeline, error) {
	if count < 1 {
		return nil, fmt.Errorf("create stagger of %d: %w", count, ErrInvalidCount)
	}
	timelines := make([]*ScrollTimeline, 0, count)
	for i := 0; i < count; i++ {
		desc := base
		shift := float64(i) * delay
		desc.Start = base.Start.Shift(shift)
		desc.End = base.End.Shift(shift)
		t, err := NewScrollTimeline(desc, viewportHeight)
		if err != nil {
			for _, made := range timelines {
				made.Dispose()
			}
			return nil, fmt.Errorf("create stagger member %d: %w", i, err)
		}
		timelines = append(timelines, t)
	}
	return timelines, nil
}
