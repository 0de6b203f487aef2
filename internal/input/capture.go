package input

import (
	"sync"
	"sync/atomic"
)

// Sink receives normalized deltas. The engine clamps the result.
type Sink interface {
	ScrollBy(delta float64)
	ScrollTo(position float64)
	Limit() float64
	Viewport() float64
}

type Config struct {
	LineHeight      float64 `yaml:"line_height"`
	KeyStep         float64 `yaml:"key_step"`
	PageFraction    float64 `yaml:"page_fraction"`
	TouchMultiplier float64 `yaml:"touch_multiplier"`
}

func DefaultConfig() Config {
	return Config{
		LineHeight:      40,
		KeyStep:         100,
		PageFraction:    0.8,
		TouchMultiplier: 2.5,
	}
}

// Capture turns wheel, keyboard and touch events into scroll deltas.
// It ignores everything until Ready is called.
type Capture struct {
	sink  Sink
	cfg   Config
	ready atomic.Bool

	mu       sync.Mutex
	touching bool
	lastY    float64
}

func NewCapture(sink Sink, cfg Config) *Capture {
	return &Capture{sink: sink, cfg: cfg}
}

// Ready enables input once the loading sequence has finished.
func (c *Capture) Ready()        { c.ready.Store(true) }
func (c *Capture) IsReady() bool { return c.ready.Load() }

// Wheel applies a wheel event. It reports whether the event was consumed.
func (c *Capture) Wheel(deltaY float64, mode DeltaMode) bool {
	if !c.ready.Load() {
		return false
	}
	switch mode {
	case DeltaLine:
		deltaY *= c.cfg.LineHeight
	case DeltaPage:
		deltaY *= c.sink.Viewport()
	}
	if deltaY == 0 {
		return true
	}
	c.sink.ScrollBy(deltaY)
	return true
}

// Key applies a key press. A true result means the host should suppress
// its native scroll action.
func (c *Capture) Key(k Key) bool {
	if !c.ready.Load() {
		return false
	}
	page := c.sink.Viewport() * c.cfg.PageFraction
	switch k {
	case KeyDown:
		c.sink.ScrollBy(c.cfg.KeyStep)
	case KeyUp:
		c.sink.ScrollBy(-c.cfg.KeyStep)
	case KeyPageDown, KeySpace:
		c.sink.ScrollBy(page)
	case KeyPageUp:
		c.sink.ScrollBy(-page)
	case KeyHome:
		c.sink.ScrollTo(0)
	case KeyEnd:
		c.sink.ScrollTo(c.sink.Limit())
	default:
		return false
	}
	return true
}

func (c *Capture) TouchStart(y float64) {
	if !c.ready.Load() {
		return
	}
	c.mu.Lock()
	c.touching = true
	c.lastY = y
	c.mu.Unlock()
}

// TouchMove scrolls by the finger travel since the previous touch point.
// Dragging up scrolls forward.
func (c *Capture) TouchMove(y float64) bool {
	if !c.ready.Load() {
		return false
	}
	c.mu.Lock()
	if !c.touching {
		c.touching = true
		c.lastY = y
		c.mu.Unlock()
		return true
	}
	delta := (c.lastY - y) * c.cfg.TouchMultiplier
	c.lastY = y
	c.mu.Unlock()

	if delta != 0 {
		c.sink.ScrollBy(delta)
	}
	return true
}

func (c *Capture) TouchEnd() {
	c.mu.Lock()
	c.touching = false
	c.mu.Unlock()
}
