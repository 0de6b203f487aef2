package scroll

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and run handling. The per-frame path
// itself never fails.
var (
	// ErrInvalidEase indicates an ease factor outside (0, 1].
	ErrInvalidEase = errors.New("scroll: ease must be in (0, 1]")

	// ErrInvalidDuration indicates a non-positive tween or run duration.
	ErrInvalidDuration = errors.New("scroll: duration must be positive")

	// ErrUnknownIntegrator indicates an integrator name with no registration.
	ErrUnknownIntegrator = errors.New("scroll: unknown integrator")

	// ErrUnknownEasing indicates an easing curve name with no registration.
	ErrUnknownEasing = errors.New("scroll: unknown easing")

	// ErrUnknownPreset indicates a preset name with no registration.
	ErrUnknownPreset = errors.New("scroll: unknown preset")

	// ErrRunNotFound indicates a recorded run id that does not exist.
	ErrRunNotFound = errors.New("scroll: run not found")
)

// FrameError wraps a recovered panic with the frame it happened on.
type FrameError struct {
	Loop  string
	Frame uint64
	Value any
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%s: frame %d: panic: %v", e.Loop, e.Frame, e.Value)
}
