package config

import (
	"sort"
	"time"

	"github.com/san-kum/driftscroll/internal/engine"
)

func preset(name string, script engine.Script, tweak func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Script = script
	if tweak != nil {
		tweak(cfg)
	}
	return cfg
}

var Presets = map[string]*Config{
	"wheel": preset("wheel", engine.Script{
		{Frame: 0, Kind: engine.EventWheel, Delta: 500},
	}, func(c *Config) {
		c.Layout = LayoutConfig{Content: 1800, Viewport: 800}
		c.Engine.Frames = 120
	}),
	"wheel-lines": preset("wheel-lines", engine.Script{
		{Frame: 0, Kind: engine.EventWheel, Delta: 3, Mode: "line"},
		{Frame: 6, Kind: engine.EventWheel, Delta: 3, Mode: "line"},
		{Frame: 12, Kind: engine.EventWheel, Delta: 3, Mode: "line"},
		{Frame: 18, Kind: engine.EventWheel, Delta: 3, Mode: "line"},
	}, nil),
	"keyboard": preset("keyboard", engine.Script{
		{Frame: 0, Kind: engine.EventKey, Key: "ArrowDown"},
		{Frame: 20, Kind: engine.EventKey, Key: "PageDown"},
		{Frame: 60, Kind: engine.EventKey, Key: "End"},
		{Frame: 160, Kind: engine.EventKey, Key: "PageUp"},
		{Frame: 220, Kind: engine.EventKey, Key: "Home"},
	}, nil),
	"touch": preset("touch", engine.Script{
		{Frame: 0, Kind: engine.EventTouchStart, Y: 600},
		{Frame: 1, Kind: engine.EventTouchMove, Y: 560},
		{Frame: 2, Kind: engine.EventTouchMove, Y: 500},
		{Frame: 3, Kind: engine.EventTouchMove, Y: 420},
		{Frame: 4, Kind: engine.EventTouchMove, Y: 330},
		{Frame: 5, Kind: engine.EventTouchEnd},
	}, nil),
	"rewind": preset("rewind", engine.Script{
		{Frame: 0, Kind: engine.EventKey, Key: "End"},
		{Frame: 150, Kind: engine.EventRewind},
	}, func(c *Config) {
		c.Engine.Frames = 260
	}),
	"rewind-interrupt": preset("rewind-interrupt", engine.Script{
		{Frame: 0, Kind: engine.EventKey, Key: "End"},
		{Frame: 150, Kind: engine.EventRewind},
		{Frame: 180, Kind: engine.EventWheel, Delta: -200},
	}, func(c *Config) {
		c.Engine.Frames = 260
	}),
	"resize": preset("resize", engine.Script{
		{Frame: 0, Kind: engine.EventWheel, Delta: 800},
		{Frame: 30, Kind: engine.EventResize, Content: 1100, Viewport: 800},
	}, func(c *Config) {
		c.Layout = LayoutConfig{Content: 1800, Viewport: 800}
		c.Engine.Frames = 90
	}),
	"loading": preset("loading", engine.Script{
		{Frame: 0, Kind: engine.EventWheel, Delta: 600},
		{Frame: 45, Kind: engine.EventReady},
		{Frame: 50, Kind: engine.EventWheel, Delta: 600},
	}, nil),
	"legacy-144hz": preset("legacy-144hz", engine.Script{
		{Frame: 0, Kind: engine.EventWheel, Delta: 500},
	}, func(c *Config) {
		c.Engine.Integrator = "exponential"
		c.Engine.FPS = 144
		c.Engine.Frames = 144
	}),
	"floaty": preset("floaty", engine.Script{
		{Frame: 0, Kind: engine.EventWheel, Delta: 1200},
	}, func(c *Config) {
		c.Engine.Ease = 0.03
		c.Rewind.Duration = 2 * time.Second
		c.Rewind.Easing = "outExpo"
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
