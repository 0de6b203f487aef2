package loop

import (
	"context"
	"errors"
	"time"
)

// ErrDone is returned by a Clock that has no more frames to give.
var ErrDone = errors.New("loop: clock exhausted")

// Clock paces a loop. Wait blocks until the next frame and returns the
// time elapsed since the previous one.
type Clock interface {
	Wait(ctx context.Context) (time.Duration, error)
}

// Ticker is a wall-clock Clock at a fixed rate.
type Ticker struct {
	ticker *time.Ticker
	last   time.Time
}

func NewTicker(fps float64) *Ticker {
	interval := time.Duration(float64(time.Second) / fps)
	return &Ticker{ticker: time.NewTicker(interval), last: time.Now()}
}

func (t *Ticker) Wait(ctx context.Context) (time.Duration, error) {
	select {
	case <-ctx.Done():
		t.ticker.Stop()
		return 0, ctx.Err()
	case now := <-t.ticker.C:
		dt := now.Sub(t.last)
		t.last = now
		return dt, nil
	}
}

// Stepper hands out a fixed number of frames of equal length without
// sleeping. Tests use it to run loops deterministically.
type Stepper struct {
	dt        time.Duration
	remaining int
}

func NewStepper(dt time.Duration, frames int) *Stepper {
	return &Stepper{dt: dt, remaining: frames}
}

func (s *Stepper) Wait(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.remaining <= 0 {
		return 0, ErrDone
	}
	s.remaining--
	return s.dt, nil
}
