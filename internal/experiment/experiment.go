package experiment

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/san-kum/driftscroll/internal/config"
	"github.com/san-kum/driftscroll/internal/engine"
	"github.com/san-kum/driftscroll/internal/signal"
	"github.com/san-kum/driftscroll/internal/telemetry"
)

// Experiment is one engine built from a config, ready to replay its script.
type Experiment struct {
	cfg    *config.Config
	engine *engine.Engine
	board  *signal.Board
	tracer trace.Tracer
}

func New(cfg *config.Config, reg *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	integ, err := reg.GetIntegrator(cfg.Engine.Integrator)
	if err != nil {
		return nil, err
	}

	board := signal.NewBoard()
	eng, err := engine.New(cfg.ScrollConfig(), integ, board)
	if err != nil {
		return nil, err
	}
	for _, m := range reg.DefaultMetrics() {
		eng.AddMetric(m)
	}

	return &Experiment{
		cfg:    cfg,
		engine: eng,
		board:  board,
		tracer: telemetry.Tracer(),
	}, nil
}

// SetTracer replaces the globally registered tracer.
func (e *Experiment) SetTracer(t trace.Tracer) { e.tracer = t }

func (e *Experiment) Engine() *engine.Engine { return e.engine }
func (e *Experiment) Board() *signal.Board   { return e.board }

func (e *Experiment) Run(ctx context.Context) (*engine.Result, error) {
	rc := e.cfg.RunConfig()

	ctx, span := e.tracer.Start(ctx, "run", trace.WithAttributes(
		attribute.String("preset", e.cfg.Name),
		attribute.String("integrator", e.engine.IntegratorName()),
		attribute.Float64("ease", e.cfg.Engine.Ease),
		attribute.Float64("fps", rc.FPS),
		attribute.Int("frames", rc.Frames),
		attribute.Int("events", len(e.cfg.Script)),
	))
	defer span.End()

	result, err := e.engine.Run(ctx, e.cfg.Script, rc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	span.SetAttributes(attribute.Int("steps", result.StepsTaken))
	for name, v := range result.Metrics {
		span.SetAttributes(attribute.Float64("metric."+name, v))
	}
	if len(result.Errors) > 0 {
		span.SetStatus(codes.Error, result.Errors[0].Error())
	}
	return result, nil
}

// Variants crosses integrator names with ease values for an ensemble
// comparison. An empty eases slice keeps the config's ease.
func Variants(cfg *config.Config, reg *Registry, names []string, eases []float64) ([]engine.Variant, error) {
	if len(eases) == 0 {
		eases = []float64{cfg.Engine.Ease}
	}

	out := make([]engine.Variant, 0, len(names)*len(eases))
	for _, name := range names {
		for _, ease := range eases {
			integ, err := reg.GetIntegrator(name)
			if err != nil {
				return nil, err
			}
			sc := cfg.ScrollConfig()
			sc.Ease = ease
			if err := sc.Validate(); err != nil {
				return nil, err
			}
			out = append(out, engine.Variant{
				Name:       fmt.Sprintf("%s/%.3f", name, ease),
				Config:     sc,
				Integrator: integ,
				Metrics:    reg.DefaultMetrics,
			})
		}
	}
	return out, nil
}
