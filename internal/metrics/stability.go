package metrics

import (
	"math"

	"github.com/san-kum/driftscroll/internal/scroll"
)

// BoundViolations counts frames where target or position left [0, limit].
// Anything but zero is a bug.
type BoundViolations struct {
	name       string
	violations int
}

func NewBoundViolations() *BoundViolations {
	return &BoundViolations{name: "bound_violations"}
}

func (b *BoundViolations) Name() string { return b.name }

func (b *BoundViolations) Observe(s scroll.State, frame uint64) {
	limit := math.Max(s.Limit, 0)
	if s.Position < 0 || s.Position > limit || s.Target < 0 || s.Target > limit {
		b.violations++
	}
}

func (b *BoundViolations) Value() float64 { return float64(b.violations) }
func (b *BoundViolations) Reset()         { b.violations = 0 }

// Overshoots counts frames where position crossed a target that did not
// move. Exponential easing should never produce one.
type Overshoots struct {
	name       string
	count      int
	prevTarget float64
	prevError  float64
	started    bool
}

func NewOvershoots() *Overshoots {
	return &Overshoots{name: "overshoots"}
}

func (o *Overshoots) Name() string { return o.name }

func (o *Overshoots) Observe(s scroll.State, frame uint64) {
	err := s.Target - s.Position
	if o.started && s.Target == o.prevTarget && err*o.prevError < 0 {
		o.count++
	}
	o.prevTarget = s.Target
	o.prevError = err
	o.started = true
}

func (o *Overshoots) Value() float64 { return float64(o.count) }

func (o *Overshoots) Reset() {
	o.count = 0
	o.started = false
}

// Settle counts the frames spent moving faster than the threshold.
type Settle struct {
	name      string
	threshold float64
	moving    int
}

func NewSettle(threshold float64) *Settle {
	return &Settle{name: "moving_frames", threshold: threshold}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(st scroll.State, frame uint64) {
	if math.Abs(st.Velocity) > s.threshold {
		s.moving++
	}
}

func (s *Settle) Value() float64 { return float64(s.moving) }
func (s *Settle) Reset()         { s.moving = 0 }

// Default is the metric set recorded with every run.
func Default() []scroll.Metric {
	return []scroll.Metric{
		NewPeakMomentum(),
		NewTravel(),
		NewBoundViolations(),
		NewOvershoots(),
		NewSettle(0.5),
	}
}
