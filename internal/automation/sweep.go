package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/driftscroll/internal/config"
	"github.com/san-kum/driftscroll/internal/experiment"
	"github.com/san-kum/driftscroll/internal/scroll"
)

// Sweep replays one preset over the cartesian product of its parameter
// values, once per integrator.
type Sweep struct {
	Name        string               `yaml:"name"`
	Preset      string               `yaml:"preset"`
	Integrators []string             `yaml:"integrators"`
	Params      map[string][]float64 `yaml:"params"`
	Objective   string               `yaml:"objective"`
}

// SweepResult is one grid point.
type SweepResult struct {
	Integrator string
	Params     map[string]float64
	Metrics    map[string]float64
	Final      float64
}

var sweepParams = map[string]func(*config.Config, float64){
	"ease":   func(c *config.Config, v float64) { c.Engine.Ease = v },
	"fps":    func(c *config.Config, v float64) { c.Engine.FPS = v },
	"frames": func(c *config.Config, v float64) { c.Engine.Frames = int(v) },
	"rewind": func(c *config.Config, v float64) { c.Rewind.Duration = time.Duration(v * float64(time.Second)) },
}

func LoadSweep(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sweep Sweep
	if err := yaml.Unmarshal(data, &sweep); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &sweep, nil
}

func (s *Sweep) Validate() error {
	if config.GetPreset(s.Preset) == nil {
		return fmt.Errorf("%w: %s", scroll.ErrUnknownPreset, s.Preset)
	}
	for name, values := range s.Params {
		if _, ok := sweepParams[name]; !ok {
			return fmt.Errorf("unknown sweep parameter %q", name)
		}
		if len(values) == 0 {
			return fmt.Errorf("sweep parameter %q has no values", name)
		}
	}
	return nil
}

func (s *Sweep) paramNames() []string {
	names := make([]string, 0, len(s.Params))
	for name := range s.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunSweep replays every grid point in order. Progress lines go to w.
func RunSweep(ctx context.Context, sweep *Sweep, reg *experiment.Registry, w io.Writer) ([]SweepResult, error) {
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	if w == nil {
		w = io.Discard
	}
	integrators := sweep.Integrators
	if len(integrators) == 0 {
		integrators = []string{config.DefaultIntegrator}
	}

	var points []map[string]float64
	grid(sweep.paramNames(), sweep.Params, map[string]float64{}, &points)

	results := make([]SweepResult, 0, len(points)*len(integrators))
	for _, integ := range integrators {
		for _, params := range points {
			cfg := config.GetPreset(sweep.Preset)
			cfg.Engine.Integrator = integ
			for name, v := range params {
				sweepParams[name](cfg, v)
			}

			exp, err := experiment.New(cfg, reg)
			if err != nil {
				return results, fmt.Errorf("%s %v: %w", integ, params, err)
			}
			result, err := exp.Run(ctx)
			if err != nil {
				return results, err
			}

			final := 0.0
			if n := len(result.Samples); n > 0 {
				final = result.Samples[n-1].State.Position
			}
			results = append(results, SweepResult{
				Integrator: integ,
				Params:     params,
				Metrics:    result.Metrics,
				Final:      final,
			})
			fmt.Fprintf(w, "sweep %d/%d: %s %v\n", len(results), cap(results), integ, params)
		}
	}
	return results, nil
}

func grid(names []string, values map[string][]float64, current map[string]float64, out *[]map[string]float64) {
	if len(names) == 0 {
		point := make(map[string]float64, len(current))
		for k, v := range current {
			point[k] = v
		}
		*out = append(*out, point)
		return
	}
	for _, v := range values[names[0]] {
		current[names[0]] = v
		grid(names[1:], values, current, out)
	}
	delete(current, names[0])
}

// Best returns the result with the lowest value of metric.
func Best(results []SweepResult, metric string) (SweepResult, bool) {
	best, found := SweepResult{}, false
	bestVal := math.Inf(1)
	for _, r := range results {
		v, ok := r.Metrics[metric]
		if ok && v < bestVal {
			best, bestVal, found = r, v, true
		}
	}
	return best, found
}
