package tui

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/driftscroll/internal/config"
	"github.com/san-kum/driftscroll/internal/consumers/audio"
	"github.com/san-kum/driftscroll/internal/consumers/shader"
	"github.com/san-kum/driftscroll/internal/consumers/timeline"
	"github.com/san-kum/driftscroll/internal/engine"
	"github.com/san-kum/driftscroll/internal/input"
	"github.com/san-kum/driftscroll/internal/loop"
	"github.com/san-kum/driftscroll/internal/scroll"
	"github.com/san-kum/driftscroll/internal/signal"
)

const maxTransitions = 6

// Host wires an engine to its board and the three consumers. The engine
// is ticked by the terminal program; consumers run on their own loops.
type Host struct {
	cfg     *config.Config
	engine  *engine.Engine
	board   *signal.Board
	capture *input.Capture

	shader   *shader.Shader
	mod      *audio.Modulator
	timeline *timeline.Timeline
	group    *loop.Group
	ticker   *loop.Loop

	offset atomic.Uint64

	mu          sync.Mutex
	transitions []string
}

func NewHost(cfg *config.Config, integ scroll.Integrator, logger *log.Logger) (*Host, error) {
	board := signal.NewBoard()
	eng, err := engine.New(cfg.ScrollConfig(), integ, board)
	if err != nil {
		return nil, err
	}
	eng.Resize(cfg.Layout.Content, cfg.Layout.Viewport)

	tl, err := timeline.New(board, cfg.Scenes)
	if err != nil {
		return nil, err
	}

	h := &Host{
		cfg:      cfg,
		engine:   eng,
		board:    board,
		capture:  input.NewCapture(eng, cfg.Input),
		shader:   shader.New(board, cfg.Shader),
		mod:      audio.NewModulator(board, cfg.Audio),
		timeline: tl,
	}
	eng.SetSurface(h)
	tl.OnTransition(h.record)

	// The terminal program owns the engine clock; the loop only guards
	// each frame.
	h.ticker = loop.New("engine", nil, func(dt time.Duration) { eng.Tick(dt) }, logger)

	h.group = loop.NewGroup(
		loop.New("shader", loop.NewTicker(float64(cfg.Shader.FPS)), h.shader.Frame, logger),
		loop.New("audio", loop.NewTicker(cfg.Engine.FPS), h.mod.Frame, logger),
		loop.New("timeline", loop.NewTicker(cfg.Engine.FPS), h.timeline.Frame, logger),
	)
	return h, nil
}

// Apply implements scroll.Surface.
func (h *Host) Apply(position float64) {
	h.offset.Store(uint64(max(position, 0)))
}

func (h *Host) record(t timeline.Transition) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transitions = append(h.transitions, t.String())
	if len(h.transitions) > maxTransitions {
		h.transitions = h.transitions[len(h.transitions)-maxTransitions:]
	}
}

// Tick advances the engine one guarded frame and returns what the board
// holds afterwards. A panicking frame is logged and leaves the board as it
// was.
func (h *Host) Tick(dt time.Duration) scroll.Snapshot {
	h.ticker.Step(dt)
	return h.board.Snapshot()
}

// Run drives the consumer loops until ctx is canceled.
func (h *Host) Run(ctx context.Context) error {
	return h.group.Run(ctx)
}

func (h *Host) Transitions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.transitions...)
}

// Offset is the last whole-pixel position handed to the surface.
func (h *Host) Offset() int { return int(h.offset.Load()) }

func (h *Host) Engine() *engine.Engine       { return h.engine }
func (h *Host) Board() *signal.Board         { return h.board }
func (h *Host) Capture() *input.Capture      { return h.capture }
func (h *Host) Shader() *shader.Shader       { return h.shader }
func (h *Host) Modulator() *audio.Modulator  { return h.mod }
func (h *Host) Timeline() *timeline.Timeline { return h.timeline }
func (h *Host) Loops() []*loop.Loop          { return h.group.Loops() }
func (h *Host) EngineLoop() *loop.Loop       { return h.ticker }
