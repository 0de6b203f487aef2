package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/driftscroll/internal/config"
	"github.com/san-kum/driftscroll/internal/engine"
	"github.com/san-kum/driftscroll/internal/experiment"
)

// MonteCarloConfig drives random input bursts against a preset's engine
// settings to look for invariant breaks.
type MonteCarloConfig struct {
	Preset     string
	Trials     int
	Events     int
	MaxDelta   float64
	RewindOdds float64
	Seed       int64
}

type MonteCarloResult struct {
	TrialID         int
	Script          engine.Script
	BoundViolations float64
	Overshoots      float64
	Final           float64
	Settled         bool
}

var randomKeys = []string{"ArrowDown", "ArrowUp", "PageDown", "PageUp", " ", "Home", "End"}

func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, reg *experiment.Registry, w io.Writer) ([]MonteCarloResult, error) {
	base := config.GetPreset(mc.Preset)
	if base == nil {
		base = config.DefaultConfig()
	}
	if w == nil {
		w = io.Discard
	}

	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, 0, mc.Trials)
	for trial := 0; trial < mc.Trials; trial++ {
		cfg := base.Clone()
		cfg.Script = randomScript(rng, mc, cfg.RunConfig().Frames)

		exp, err := experiment.New(cfg, reg)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		r := MonteCarloResult{
			TrialID:         trial,
			Script:          cfg.Script,
			BoundViolations: result.Metrics["bound_violations"],
			Overshoots:      result.Metrics["overshoots"],
		}
		if n := len(result.Samples); n > 0 {
			last := result.Samples[n-1].State
			r.Final = last.Position
			r.Settled = math.Abs(last.Velocity) < 1
		}
		results = append(results, r)

		if (trial+1)%10 == 0 {
			fmt.Fprintf(w, "monte carlo: %d/%d trials complete\n", trial+1, mc.Trials)
		}
	}
	return results, nil
}

// randomScript spreads events over the first half of the run so the
// engine has time to settle before the last frame.
func randomScript(rng *rand.Rand, mc *MonteCarloConfig, frames int) engine.Script {
	window := max(frames/2, 1)
	script := make(engine.Script, 0, mc.Events)
	for i := 0; i < mc.Events; i++ {
		ev := engine.Event{Frame: rng.Intn(window)}
		switch r := rng.Float64(); {
		case r < mc.RewindOdds:
			ev.Kind = engine.EventRewind
		case r < 0.6:
			ev.Kind = engine.EventWheel
			ev.Delta = (rng.Float64()*2 - 1) * mc.MaxDelta
		default:
			ev.Kind = engine.EventKey
			ev.Key = randomKeys[rng.Intn(len(randomKeys))]
		}
		script = append(script, ev)
	}
	return script
}

func MonteCarloStats(results []MonteCarloResult) (clean int, broken int) {
	for _, r := range results {
		if r.BoundViolations == 0 && r.Overshoots == 0 {
			clean++
		} else {
			broken++
		}
	}
	return
}
