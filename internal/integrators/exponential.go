package integrators

import "time"

// Exponential applies the ease factor once per call, whatever the frame
// time. Convergence speed follows the display refresh rate.
type Exponential struct{}

func NewExponential() *Exponential {
	return &Exponential{}
}

func (e *Exponential) Name() string { return "exponential" }

func (e *Exponential) Step(position, target, ease float64, dt time.Duration) float64 {
	return position + (target-position)*ease
}
