package tween

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/driftscroll/internal/scroll"
)

// Easing maps linear time in [0, 1] to progress in [0, 1]. Every curve
// registered here is monotonic non-decreasing with f(0)=0 and f(1)=1.
type Easing func(t float64) float64

var easings = map[string]Easing{
	"linear":     func(t float64) float64 { return t },
	"inQuad":     func(t float64) float64 { return t * t },
	"outQuad":    func(t float64) float64 { return t * (2 - t) },
	"inOutQuad":  inOutQuad,
	"inOutCubic": inOutCubic,
	"outExpo":    outExpo,
}

func inOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func inOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func outExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func Lookup(name string) (Easing, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", scroll.ErrUnknownEasing, name)
	}
	return fn, nil
}

func Names() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
