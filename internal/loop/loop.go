package loop

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/san-kum/driftscroll/internal/scroll"
	"golang.org/x/sync/errgroup"
)

// FrameFunc is one frame of work.
type FrameFunc func(dt time.Duration)

// Loop runs a FrameFunc once per clock tick until its context is
// canceled or the clock runs out. A panicking frame is logged and skipped;
// the next frame still runs.
type Loop struct {
	name   string
	frame  FrameFunc
	clock  Clock
	logger *log.Logger

	frames atomic.Uint64
	panics atomic.Uint64
	last   atomic.Pointer[scroll.FrameError]
}

func New(name string, clock Clock, frame FrameFunc, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{name: name, frame: frame, clock: clock, logger: logger}
}

func (l *Loop) Name() string { return l.name }

func (l *Loop) Run(ctx context.Context) error {
	for {
		dt, err := l.clock.Wait(ctx)
		if err != nil {
			if errors.Is(err, ErrDone) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		l.Step(dt)
	}
}

// Step runs a single guarded frame.
func (l *Loop) Step(dt time.Duration) {
	n := l.frames.Add(1)
	if ferr := Guard(l.name, n, func() { l.frame(dt) }); ferr != nil {
		l.panics.Add(1)
		l.last.Store(ferr)
		l.logger.Printf("%v", ferr)
	}
}

func (l *Loop) Frames() uint64 { return l.frames.Load() }
func (l *Loop) Panics() uint64 { return l.panics.Load() }

// LastPanic returns the most recent recovered frame panic, if any.
func (l *Loop) LastPanic() *scroll.FrameError { return l.last.Load() }

// Guard runs fn and converts a panic into a FrameError.
func Guard(name string, frame uint64, fn func()) (ferr *scroll.FrameError) {
	defer func() {
		if r := recover(); r != nil {
			ferr = &scroll.FrameError{Loop: name, Frame: frame, Value: r}
		}
	}()
	fn()
	return nil
}

// Group runs loops side by side with no ordering between them.
type Group struct {
	loops []*Loop
}

func NewGroup(loops ...*Loop) *Group {
	return &Group{loops: loops}
}

func (g *Group) Add(l *Loop) { g.loops = append(g.loops, l) }

func (g *Group) Loops() []*Loop { return g.loops }

// Run blocks until every loop has returned. The first error cancels the rest.
func (g *Group) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, l := range g.loops {
		l := l
		eg.Go(func() error { return l.Run(ctx) })
	}
	return eg.Wait()
}
