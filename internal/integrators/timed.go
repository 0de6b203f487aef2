package integrators

import (
	"math"
	"time"

	"github.com/san-kum/driftscroll/internal/scroll"
)

// Timed scales the ease factor by elapsed frame time so that one frame at
// scroll.RefFPS moves exactly as far as Exponential does, and any frame
// rate covers the same distance per second.
type Timed struct {
	refFPS float64
}

func NewTimed() *Timed {
	return &Timed{refFPS: scroll.RefFPS}
}

func (t *Timed) Name() string { return "timed" }

func (t *Timed) Step(position, target, ease float64, dt time.Duration) float64 {
	if dt <= 0 {
		return position
	}
	return position + (target-position)*t.Factor(ease, dt)
}

// Factor is the per-frame ease for a frame of length dt.
func (t *Timed) Factor(ease float64, dt time.Duration) float64 {
	frames := dt.Seconds() * t.refFPS
	return 1 - math.Pow(1-ease, frames)
}
