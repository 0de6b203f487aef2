package engine

import (
	"math"
	"sync"
	"time"

	"github.com/san-kum/driftscroll/internal/scroll"
	"github.com/san-kum/driftscroll/internal/tween"
)

// Publisher is the write side of the signal board.
type Publisher interface {
	Publish(s scroll.Snapshot)
}

// Engine owns the scroll state. Input may arrive from any goroutine; Tick
// is expected to run on one loop.
type Engine struct {
	mu sync.Mutex

	cfg        scroll.Config
	integrator scroll.Integrator
	board      Publisher
	rewindEase tween.Easing

	layout  scroll.Layout
	surface scroll.Surface

	state    scroll.State
	content  float64
	viewport float64
	rewind   *tween.Tween
	frame    uint64

	observers []scroll.Observer
	metrics   []scroll.Metric
}

func New(cfg scroll.Config, integrator scroll.Integrator, board Publisher) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ease, err := tween.Lookup(cfg.RewindEasing)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		integrator: integrator,
		board:      board,
		rewindEase: ease,
		observers:  make([]scroll.Observer, 0),
		metrics:    make([]scroll.Metric, 0),
	}, nil
}

func (e *Engine) SetLayout(l scroll.Layout) {
	e.mu.Lock()
	e.layout = l
	e.mu.Unlock()
}

func (e *Engine) SetSurface(s scroll.Surface) {
	e.mu.Lock()
	e.surface = s
	e.mu.Unlock()
}

func (e *Engine) AddObserver(o scroll.Observer) {
	e.mu.Lock()
	e.observers = append(e.observers, o)
	e.mu.Unlock()
}

func (e *Engine) AddMetric(m scroll.Metric) {
	e.mu.Lock()
	e.metrics = append(e.metrics, m)
	e.mu.Unlock()
}

// Resize records new content and viewport extents and re-clamps at once.
func (e *Engine) Resize(content, viewport float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content, e.viewport = content, viewport
	e.rebound()
}

func (e *Engine) rebound() {
	e.state.Limit = scroll.Limit(e.content, e.viewport)
	e.state.Target = scroll.Clamp(e.state.Target, 0, e.state.Limit)
	e.state.Position = scroll.Clamp(e.state.Position, 0, e.state.Limit)
}

// ScrollBy moves the target by delta. Input during a rewind cancels it and
// re-anchors the target at the current position first.
func (e *Engine) ScrollBy(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interrupt()
	e.state.Target = scroll.Clamp(e.state.Target+delta, 0, e.state.Limit)
}

func (e *Engine) ScrollTo(position float64) {
	if math.IsNaN(position) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interrupt()
	e.state.Target = scroll.Clamp(position, 0, e.state.Limit)
}

func (e *Engine) interrupt() {
	if e.rewind == nil {
		return
	}
	e.rewind = nil
	e.state.Target = e.state.Position
}

// Rewind retargets to the top and tweens position there over the configured
// duration. Calling it again mid-flight restarts from the current position.
func (e *Engine) Rewind() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Target = 0
	e.rewind = tween.New(e.state.Position, 0, e.cfg.RewindDuration, e.rewindEase)
}

// Tick advances one frame of length dt and publishes the result. The
// surface is applied after the engine lock is released.
func (e *Engine) Tick(dt time.Duration) scroll.Snapshot {
	snap, surface := e.step(dt)
	if surface != nil {
		surface.Apply(snap.Position)
	}
	return snap
}

// step runs under the lock. Layout, metrics, observers and the board are
// caller code; a panic in any of them must still release the lock.
func (e *Engine) step(dt time.Duration) (scroll.Snapshot, scroll.Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.frame++
	if e.layout != nil {
		e.content, e.viewport = e.layout.ContentHeight(), e.layout.ViewportHeight()
	}
	e.rebound()

	s := &e.state
	if e.rewind != nil {
		s.Position = e.rewind.Advance(dt)
		if e.rewind.Done() {
			e.rewind = nil
		}
	} else {
		s.Position = e.integrator.Step(s.Position, s.Target, e.cfg.Ease, dt)
	}
	s.Position = scroll.Clamp(s.Position, 0, s.Limit)
	s.Velocity = s.Target - s.Position

	snap := s.Snapshot(e.frame, e.rewind != nil)
	for _, m := range e.metrics {
		m.Observe(*s, e.frame)
	}
	for _, o := range e.observers {
		o.OnStep(*s, e.frame)
	}
	if e.board != nil {
		e.board.Publish(snap)
	}
	return snap, e.surface
}

// Reset returns the engine to the top at rest with the frame counter at
// zero. Extents, layout, surface, observers and metrics are kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = scroll.State{}
	e.rewind = nil
	e.frame = 0
	e.rebound()
}

func (e *Engine) State() scroll.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Rewinding() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rewind != nil
}

func (e *Engine) Limit() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Limit
}

func (e *Engine) Viewport() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

func (e *Engine) Frame() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

func (e *Engine) Config() scroll.Config { return e.cfg }

func (e *Engine) IntegratorName() string { return e.integrator.Name() }
