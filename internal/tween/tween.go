package tween

import (
	"time"

	"github.com/san-kum/driftscroll/internal/scroll"
)

// Tween interpolates a value from one point to another over a fixed
// duration. It is advanced explicitly by frame time, never by wall clock.
type Tween struct {
	from, to float64
	duration time.Duration
	elapsed  time.Duration
	ease     Easing
}

func New(from, to float64, duration time.Duration, ease Easing) *Tween {
	if ease == nil {
		ease = easings["linear"]
	}
	return &Tween{from: from, to: to, duration: duration, ease: ease}
}

// Advance moves the tween forward by dt and returns the new value.
func (tw *Tween) Advance(dt time.Duration) float64 {
	if dt > 0 {
		tw.elapsed += dt
	}
	if tw.elapsed > tw.duration {
		tw.elapsed = tw.duration
	}
	return tw.Value()
}

func (tw *Tween) Value() float64 {
	return tw.from + (tw.to-tw.from)*tw.ease(tw.Fraction())
}

func (tw *Tween) Fraction() float64 {
	if tw.duration <= 0 {
		return 1
	}
	return scroll.Clamp(float64(tw.elapsed)/float64(tw.duration), 0, 1)
}

func (tw *Tween) Done() bool {
	return tw.elapsed >= tw.duration
}

func (tw *Tween) To() float64 { return tw.to }
