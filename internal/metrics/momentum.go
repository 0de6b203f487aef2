package metrics

import (
	"math"

	"github.com/san-kum/driftscroll/internal/scroll"
)

// PeakMomentum is the largest absolute momentum seen.
type PeakMomentum struct {
	name string
	peak float64
}

func NewPeakMomentum() *PeakMomentum {
	return &PeakMomentum{name: "peak_momentum"}
}

func (p *PeakMomentum) Name() string { return p.name }

func (p *PeakMomentum) Observe(s scroll.State, frame uint64) {
	p.peak = math.Max(p.peak, math.Abs(s.Velocity))
}

func (p *PeakMomentum) Value() float64 { return p.peak }
func (p *PeakMomentum) Reset()         { p.peak = 0 }

// Travel is the total distance the eased position moved.
type Travel struct {
	name    string
	total   float64
	prev    float64
	started bool
}

func NewTravel() *Travel {
	return &Travel{name: "travel"}
}

func (t *Travel) Name() string { return t.name }

func (t *Travel) Observe(s scroll.State, frame uint64) {
	if t.started {
		t.total += math.Abs(s.Position - t.prev)
	}
	t.prev = s.Position
	t.started = true
}

func (t *Travel) Value() float64 { return t.total }

func (t *Travel) Reset() {
	t.total = 0
	t.prev = 0
	t.started = false
}
