package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/driftscroll/internal/consumers/audio"
	"github.com/san-kum/driftscroll/internal/consumers/shader"
	"github.com/san-kum/driftscroll/internal/consumers/timeline"
	"github.com/san-kum/driftscroll/internal/engine"
	"github.com/san-kum/driftscroll/internal/input"
	"github.com/san-kum/driftscroll/internal/scroll"
	"github.com/san-kum/driftscroll/internal/tween"
)

const (
	DefaultEase       = 0.08
	DefaultFPS        = 60.0
	DefaultFrames     = 300
	DefaultContent    = 4000.0
	DefaultViewport   = 800.0
	DefaultIntegrator = "timed"
)

type Config struct {
	Name   string           `yaml:"name,omitempty"`
	Engine EngineConfig     `yaml:"engine"`
	Input  input.Config     `yaml:"input"`
	Rewind RewindConfig     `yaml:"rewind"`
	Layout LayoutConfig     `yaml:"layout"`
	Scenes []timeline.Scene `yaml:"scenes"`
	Audio  audio.Config     `yaml:"audio"`
	Shader shader.Config    `yaml:"shader"`
	Script engine.Script    `yaml:"script,omitempty"`
}

type EngineConfig struct {
	Ease       float64 `yaml:"ease"`
	Integrator string  `yaml:"integrator"`
	FPS        float64 `yaml:"fps"`
	Frames     int     `yaml:"frames"`
}

type RewindConfig struct {
	Duration time.Duration `yaml:"duration"`
	Easing   string        `yaml:"easing"`
}

type LayoutConfig struct {
	Content  float64 `yaml:"content"`
	Viewport float64 `yaml:"viewport"`
}

func DefaultConfig() *Config {
	rewind := scroll.DefaultConfig()
	return &Config{
		Engine: EngineConfig{
			Ease:       DefaultEase,
			Integrator: DefaultIntegrator,
			FPS:        DefaultFPS,
			Frames:     DefaultFrames,
		},
		Input: input.DefaultConfig(),
		Rewind: RewindConfig{
			Duration: rewind.RewindDuration,
			Easing:   rewind.RewindEasing,
		},
		Layout: LayoutConfig{
			Content:  DefaultContent,
			Viewport: DefaultViewport,
		},
		Scenes: []timeline.Scene{
			{Name: "intro", Start: 0, End: 0.2},
			{Name: "drift", Start: 0.2, End: 0.55},
			{Name: "surge", Start: 0.55, End: 0.85},
			{Name: "outro", Start: 0.85, End: 1},
		},
		Audio:  audio.DefaultConfig(),
		Shader: shader.DefaultConfig(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.ScrollConfig().Validate(); err != nil {
		return err
	}
	if _, err := tween.Lookup(c.Rewind.Easing); err != nil {
		return err
	}
	switch c.Engine.Integrator {
	case "timed", "exponential":
	default:
		return fmt.Errorf("%w: %s", scroll.ErrUnknownIntegrator, c.Engine.Integrator)
	}
	if c.Engine.FPS <= 0 {
		return fmt.Errorf("%w: fps %v", scroll.ErrInvalidDuration, c.Engine.FPS)
	}
	if c.Layout.Viewport <= 0 {
		return fmt.Errorf("viewport must be positive, got %v", c.Layout.Viewport)
	}
	if err := timeline.Validate(c.Scenes); err != nil {
		return err
	}
	return c.Script.Validate()
}

func (c *Config) ScrollConfig() scroll.Config {
	return scroll.Config{
		Ease:           c.Engine.Ease,
		RewindDuration: c.Rewind.Duration,
		RewindEasing:   c.Rewind.Easing,
	}
}

func (c *Config) RunConfig() engine.RunConfig {
	frames := c.Engine.Frames
	if frames <= 0 {
		frames = DefaultFrames
	}
	return engine.RunConfig{
		Frames:   frames,
		FPS:      c.Engine.FPS,
		Content:  c.Layout.Content,
		Viewport: c.Layout.Viewport,
		Input:    c.Input,
	}
}

// Clone deep-copies the slices so presets are never mutated.
func (c *Config) Clone() *Config {
	out := *c
	out.Scenes = append([]timeline.Scene(nil), c.Scenes...)
	out.Script = append(engine.Script(nil), c.Script...)
	return &out
}
