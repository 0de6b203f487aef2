package engine

import (
	"context"
	"sync"

	"github.com/san-kum/driftscroll/internal/scroll"
	"github.com/san-kum/driftscroll/internal/signal"
)

// Variant is one engine configuration in an ensemble.
type Variant struct {
	Name       string
	Config     scroll.Config
	Integrator scroll.Integrator
	Metrics    func() []scroll.Metric
}

// Ensemble replays one script against several variants concurrently. Each
// variant gets its own engine and board.
type Ensemble struct {
	variants []Variant
}

func NewEnsemble(variants ...Variant) *Ensemble {
	return &Ensemble{variants: variants}
}

func (en *Ensemble) Run(ctx context.Context, script Script, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, len(en.variants))
	errs := make([]error, len(en.variants))

	var wg sync.WaitGroup
	for i, v := range en.variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()

			eng, err := New(v.Config, v.Integrator, signal.NewBoard())
			if err != nil {
				errs[idx] = err
				return
			}
			if v.Metrics != nil {
				for _, m := range v.Metrics() {
					eng.AddMetric(m)
				}
			}
			results[idx], errs[idx] = eng.Run(ctx, script, cfg)
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
