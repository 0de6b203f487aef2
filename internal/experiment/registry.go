package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/driftscroll/internal/integrators"
	"github.com/san-kum/driftscroll/internal/metrics"
	"github.com/san-kum/driftscroll/internal/scroll"
)

type Registry struct {
	integrators map[string]func() scroll.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() scroll.Integrator),
	}

	r.integrators["exponential"] = func() scroll.Integrator { return integrators.NewExponential() }
	r.integrators["timed"] = func() scroll.Integrator { return integrators.NewTimed() }

	return r
}

func (r *Registry) GetIntegrator(name string) (scroll.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", scroll.ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []scroll.Metric {
	return metrics.Default()
}
