package scroll

import (
	"math"
	"time"
)

// RefFPS is the display rate the ease factor is tuned against.
const RefFPS = 60.0

type State struct {
	Target   float64
	Position float64
	Velocity float64
	Limit    float64
}

// Progress is position/limit clamped to [0, 1], and 0 when nothing scrolls.
func (s State) Progress() float64 {
	if !(s.Limit > 0) || math.IsInf(s.Limit, 0) {
		return 0
	}
	return Clamp(s.Position/s.Limit, 0, 1)
}

func (s State) AtRest() bool {
	return s.Target == s.Position
}

func (s State) IsValid() bool {
	for _, v := range [...]float64{s.Target, s.Position, s.Velocity, s.Limit} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Snapshot struct {
	Position  float64
	Momentum  float64
	Progress  float64
	Limit     float64
	Frame     uint64
	Rewinding bool
}

func (s State) Snapshot(frame uint64, rewinding bool) Snapshot {
	return Snapshot{
		Position:  s.Position,
		Momentum:  s.Velocity,
		Progress:  s.Progress(),
		Limit:     s.Limit,
		Frame:     frame,
		Rewinding: rewinding,
	}
}

// Integrator advances position one frame toward target.
type Integrator interface {
	Name() string
	Step(position, target, ease float64, dt time.Duration) float64
}

type Layout interface {
	ContentHeight() float64
	ViewportHeight() float64
}

type Surface interface {
	Apply(position float64)
}

type Observer interface {
	OnStep(s State, frame uint64)
}

type Metric interface {
	Name() string
	Observe(s State, frame uint64)
	Value() float64
	Reset()
}

// Clamp returns v limited to [lo, hi]. When hi < lo, or v or hi is NaN,
// the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsNaN(hi) {
		return lo
	}
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Limit is the scrollable distance for the given extents, never negative.
// Extents that have not been laid out yet (NaN or infinite) scroll nothing.
func Limit(content, viewport float64) float64 {
	d := content - viewport
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return math.Max(d, 0)
}
