package reveal

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// Easing maps clamped linear progress in [0, 1] to eased progress. Overshoot
// curves (back, elastic) may briefly leave [0, 1].
type Easing func(t float64) float64

// FromTween adapts a gween easing function to an Easing over the unit range.
func FromTween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Common easings.
var (
	EaseLinear    = FromTween(ease.Linear)
	EaseIn        = FromTween(ease.InCubic)
	EaseOut       = FromTween(ease.OutCubic)
	EaseInOut     = FromTween(ease.InOutCubic)
	EaseBackOut   = FromTween(ease.OutBack)
	EaseBounceOut = FromTween(ease.OutBounce)
)

// easings is the name registry used by declarative descriptors.
var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"ease-in":     ease.InCubic,
	"ease-out":    ease.OutCubic,
	"ease-in-out": ease.InOutCubic,
	"quad-in":     ease.InQuad,
	"quad-out":    ease.OutQuad,
	"quad-in-out": ease.InOutQuad,
	"sine-out":    ease.OutSine,
	"sine-in-out": ease.InOutSine,
	"expo-out":    ease.OutExpo,
	"circ-out":    ease.OutCirc,
	"back-in":     ease.InBack,
	"back-out":    ease.OutBack,
	"back-in-out": ease.InOutBack,
	"elastic-out": ease.OutElastic,
	"bounce-out":  ease.OutBounce,
}

// EasingByName returns the registered easing for name. The empty name maps
// to linear.
func EasingByName(name string) (Easing, error) {
	fn, err := tweenFuncByName(name)
	if err != nil {
		return nil, err
	}
	return FromTween(fn), nil
}

// tweenFuncByName returns the raw gween function, for time-based tweens.
func tweenFuncByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("easing %q: %w", name, ErrUnknownEasing)
	}
	return fn, nil
}

// EasingNames returns the registered easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
