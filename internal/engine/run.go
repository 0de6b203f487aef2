package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/driftscroll/internal/input"
	"github.com/san-kum/driftscroll/internal/loop"
	"github.com/san-kum/driftscroll/internal/scroll"
)

type RunConfig struct {
	Frames   int
	FPS      float64
	Content  float64
	Viewport float64
	Input    input.Config
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Frames:   300,
		FPS:      scroll.RefFPS,
		Content:  4000,
		Viewport: 800,
		Input:    input.DefaultConfig(),
	}
}

func (c RunConfig) Dt() time.Duration {
	return time.Duration(float64(time.Second) / c.FPS)
}

type Sample struct {
	Frame     uint64
	Time      float64
	State     scroll.State
	Progress  float64
	Rewinding bool
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

func (r *Result) Series(field string) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		switch field {
		case "target":
			out[i] = s.State.Target
		case "position":
			out[i] = s.State.Position
		case "momentum", "velocity":
			out[i] = s.State.Velocity
		case "progress":
			out[i] = s.Progress
		case "limit":
			out[i] = s.State.Limit
		}
	}
	return out
}

func (c RunConfig) validate() error {
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %f", scroll.ErrInvalidDuration, c.FPS)
	}
	return nil
}

// Run replays a script against the engine for a fixed number of frames.
// Events scheduled for frame N are applied before the N-th tick. Each run
// starts from a reset engine. A frame that panics is recorded in
// Result.Errors and the run moves on to the next frame.
func (e *Engine) Run(ctx context.Context, script Script, cfg RunConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}

	e.Reset()
	for _, m := range e.metrics {
		m.Reset()
	}

	e.Resize(cfg.Content, cfg.Viewport)
	capture := input.NewCapture(e, cfg.Input)
	if !script.HasReady() {
		capture.Ready()
	}

	events := script.byFrame()
	dt := cfg.Dt()
	result := &Result{
		Samples: make([]Sample, 0, cfg.Frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, ev := range events[i] {
			e.apply(capture, ev)
		}

		var snap scroll.Snapshot
		if ferr := loop.Guard("engine", uint64(i+1), func() { snap = e.Tick(dt) }); ferr != nil {
			result.Errors = append(result.Errors, ferr)
			continue
		}
		st := e.State()
		if !st.IsValid() {
			result.Errors = append(result.Errors, fmt.Errorf("frame %d: invalid state %+v", snap.Frame, st))
			break
		}

		result.Samples = append(result.Samples, Sample{
			Frame:     snap.Frame,
			Time:      float64(i+1) * dt.Seconds(),
			State:     st,
			Progress:  snap.Progress,
			Rewinding: snap.Rewinding,
		})
		result.StepsTaken++
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
