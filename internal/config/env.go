package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Overrides are the settings that may come from DRIFTSCROLL_* variables.
// Unset variables leave the loaded value alone.
type Overrides struct {
	Ease           float64       `env:"EASE"`
	Integrator     string        `env:"INTEGRATOR"`
	FPS            float64       `env:"FPS"`
	Frames         int           `env:"FRAMES"`
	RewindDuration time.Duration `env:"REWIND_DURATION"`
	RewindEasing   string        `env:"REWIND_EASING"`
	Content        float64       `env:"CONTENT"`
	Viewport       float64       `env:"VIEWPORT"`
	AudioVolume    float64       `env:"AUDIO_VOLUME"`
}

const EnvPrefix = "DRIFTSCROLL_"

func ApplyEnv(cfg *Config) error {
	o := Overrides{
		Ease:           cfg.Engine.Ease,
		Integrator:     cfg.Engine.Integrator,
		FPS:            cfg.Engine.FPS,
		Frames:         cfg.Engine.Frames,
		RewindDuration: cfg.Rewind.Duration,
		RewindEasing:   cfg.Rewind.Easing,
		Content:        cfg.Layout.Content,
		Viewport:       cfg.Layout.Viewport,
		AudioVolume:    cfg.Audio.Volume,
	}
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg.Engine.Ease = o.Ease
	cfg.Engine.Integrator = o.Integrator
	cfg.Engine.FPS = o.FPS
	cfg.Engine.Frames = o.Frames
	cfg.Rewind.Duration = o.RewindDuration
	cfg.Rewind.Easing = o.RewindEasing
	cfg.Layout.Content = o.Content
	cfg.Layout.Viewport = o.Viewport
	cfg.Audio.Volume = o.AudioVolume
	return nil
}
