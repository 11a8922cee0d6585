package reveal

import "errors"

var (
	// ErrDisposed is returned when a handle is used after Dispose or Stop.
	ErrDisposed = errors.New("reveal: handle used after dispose")
	// ErrEmptyRange is returned for a timeline whose start and end offsets
	// resolve to the same scroll position.
	ErrEmptyRange = errors.New("reveal: timeline start and end offsets are equal")
	// ErrInvalidRange is returned for a timeline whose offsets or span are
	// not finite.
	ErrInvalidRange = errors.New("reveal: timeline offsets must be finite")
	// ErrInvalidCount is returned for a stagger or cycler with fewer than one
	// member.
	ErrInvalidCount = errors.New("reveal: count must be at least 1")
	// ErrInvalidSteps is returned for a count-up with fewer than one step.
	ErrInvalidSteps = errors.New("reveal: steps must be at least 1")
	// ErrInvalidInterval is returned for a non-positive cycle interval.
	ErrInvalidInterval = errors.New("reveal: interval must be positive")
	// ErrUnknownEasing is returned when an easing name is not registered.
	ErrUnknownEasing = errors.New("reveal: unknown easing")
	// ErrNoGeometry is returned when a region-anchored component is created
	// for a region without bounds.
	ErrNoGeometry = errors.New("reveal: region has no geometry")
)
