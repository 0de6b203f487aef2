package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/driftscroll/internal/input"
)

// Event is one scripted input, applied before the integrator runs on Frame.
type Event struct {
	Frame    int     `yaml:"frame" json:"frame"`
	Kind     string  `yaml:"kind" json:"kind"`
	Delta    float64 `yaml:"delta,omitempty" json:"delta,omitempty"`
	Mode     string  `yaml:"mode,omitempty" json:"mode,omitempty"`
	Key      string  `yaml:"key,omitempty" json:"key,omitempty"`
	Y        float64 `yaml:"y,omitempty" json:"y,omitempty"`
	Content  float64 `yaml:"content,omitempty" json:"content,omitempty"`
	Viewport float64 `yaml:"viewport,omitempty" json:"viewport,omitempty"`
}

const (
	EventReady      = "ready"
	EventWheel      = "wheel"
	EventKey        = "key"
	EventTouchStart = "touchstart"
	EventTouchMove  = "touchmove"
	EventTouchEnd   = "touchend"
	EventRewind     = "rewind"
	EventResize     = "resize"
)

type Script []Event

func (s Script) Validate() error {
	for i, ev := range s {
		if ev.Frame < 0 {
			return fmt.Errorf("script event %d: negative frame %d", i, ev.Frame)
		}
		switch ev.Kind {
		case EventReady, EventTouchStart, EventTouchMove, EventTouchEnd, EventRewind:
		case EventWheel:
			if _, err := parseMode(ev.Mode); err != nil {
				return fmt.Errorf("script event %d: %w", i, err)
			}
		case EventKey:
			if input.ParseKey(ev.Key) == input.KeyNone {
				return fmt.Errorf("script event %d: unknown key %q", i, ev.Key)
			}
		case EventResize:
			if ev.Viewport <= 0 {
				return fmt.Errorf("script event %d: resize needs a positive viewport", i)
			}
		default:
			return fmt.Errorf("script event %d: unknown kind %q", i, ev.Kind)
		}
	}
	return nil
}

// HasReady reports whether the script signals readiness itself.
func (s Script) HasReady() bool {
	for _, ev := range s {
		if ev.Kind == EventReady {
			return true
		}
	}
	return false
}

// byFrame groups events per frame, keeping script order within a frame.
func (s Script) byFrame() map[int][]Event {
	sorted := make(Script, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })

	out := make(map[int][]Event)
	for _, ev := range sorted {
		out[ev.Frame] = append(out[ev.Frame], ev)
	}
	return out
}

func parseMode(mode string) (input.DeltaMode, error) {
	switch strings.ToLower(mode) {
	case "", "pixel":
		return input.DeltaPixel, nil
	case "line":
		return input.DeltaLine, nil
	case "page":
		return input.DeltaPage, nil
	default:
		return 0, fmt.Errorf("unknown wheel mode %q", mode)
	}
}

func (e *Engine) apply(c *input.Capture, ev Event) {
	switch ev.Kind {
	case EventReady:
		c.Ready()
	case EventWheel:
		mode, _ := parseMode(ev.Mode)
		c.Wheel(ev.Delta, mode)
	case EventKey:
		c.Key(input.ParseKey(ev.Key))
	case EventTouchStart:
		c.TouchStart(ev.Y)
	case EventTouchMove:
		c.TouchMove(ev.Y)
	case EventTouchEnd:
		c.TouchEnd()
	case EventRewind:
		e.Rewind()
	case EventResize:
		e.Resize(ev.Content, ev.Viewport)
	}
}
