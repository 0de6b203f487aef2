// Package shader turns published scroll signals into smoothed uniform
// values for the background renderer.
package shader

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/driftscroll/internal/signal"
)

type Config struct {
	Smoothing     float64 `yaml:"smoothing"`
	VelocityScale float64 `yaml:"velocity_scale"`
	FPS           int     `yaml:"fps"`
	Frequency     float64 `yaml:"frequency"`
	Damping       float64 `yaml:"damping"`
}

func DefaultConfig() Config {
	return Config{
		Smoothing:     0.1,
		VelocityScale: 1500,
		FPS:           60,
		Frequency:     6,
		Damping:       0.5,
	}
}

// Uniforms are the values handed to the GPU each frame.
type Uniforms struct {
	Time       float64
	Velocity   float64
	Progress   float64
	Distortion float64
}

// Sink receives uniform values by name, e.g. a WebGL program or CSS
// custom properties.
type Sink interface {
	SetUniform(name string, v float64)
}

type Shader struct {
	reader signal.Reader
	cfg    Config
	spring harmonica.Spring
	sink   Sink

	mu      sync.RWMutex
	u       Uniforms
	distVel float64
	primed  bool
}

func New(reader signal.Reader, cfg Config) *Shader {
	return &Shader{
		reader: reader,
		cfg:    cfg,
		spring: harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping),
	}
}

func (s *Shader) SetSink(sink Sink) {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
}

// Frame polls the board once and re-smooths the raw signals with its own
// exponential filter. Distortion chases normalized speed on a spring so
// it wobbles a little after hard flicks.
func (s *Shader) Frame(dt time.Duration) {
	snap := s.reader.Snapshot()

	s.mu.Lock()
	u := &s.u
	u.Time += dt.Seconds()
	if !s.primed {
		u.Progress = snap.Progress
		s.primed = true
	}
	u.Velocity += (snap.Momentum - u.Velocity) * s.cfg.Smoothing
	u.Progress += (snap.Progress - u.Progress) * s.cfg.Smoothing

	speed := math.Min(math.Abs(u.Velocity)/s.cfg.VelocityScale, 1)
	u.Distortion, s.distVel = s.spring.Update(u.Distortion, s.distVel, speed)

	out := *u
	sink := s.sink
	s.mu.Unlock()

	if sink != nil {
		sink.SetUniform("uTime", out.Time)
		sink.SetUniform("uVelocity", out.Velocity)
		sink.SetUniform("uProgress", out.Progress)
		sink.SetUniform("uDistortion", out.Distortion)
	}
}

func (s *Shader) Uniforms() Uniforms {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.u
}
