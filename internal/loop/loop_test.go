package loop

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestStepperRunsExactFrames(t *testing.T) {
	var count int
	var total time.Duration
	l := New("integrator", NewStepper(time.Second/60, 120), func(dt time.Duration) {
		count++
		total += dt
	}, nil)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if count != 120 || l.Frames() != 120 {
		t.Errorf("ran %d frames (counter %d), want 120", count, l.Frames())
	}
	if total != 120*(time.Second/60) {
		t.Errorf("total dt = %v", total)
	}
}

func TestLoopSurvivesPanickingFrame(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	var count int
	l := New("shader", NewStepper(time.Millisecond, 10), func(dt time.Duration) {
		count++
		if count == 3 {
			panic("bad uniform")
		}
	}, logger)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if count != 10 {
		t.Errorf("ran %d frames, want 10", count)
	}
	if l.Panics() != 1 {
		t.Errorf("panics = %d, want 1", l.Panics())
	}
	last := l.LastPanic()
	if last == nil || last.Frame != 3 || last.Loop != "shader" {
		t.Errorf("last panic = %+v", last)
	}
	if !strings.Contains(buf.String(), "bad uniform") {
		t.Errorf("panic not logged: %q", buf.String())
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var count atomic.Int64
	l := New("audio", NewTicker(1000), func(dt time.Duration) {
		if count.Add(1) == 5 {
			cancel()
		}
	}, nil)

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on cancel, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
	if count.Load() < 5 {
		t.Errorf("ran %d frames before stop", count.Load())
	}
}

func TestGroupRunsIndependentLoops(t *testing.T) {
	var a, b atomic.Int64
	g := NewGroup(
		New("a", NewStepper(time.Millisecond, 30), func(time.Duration) { a.Add(1) }, nil),
		New("b", NewStepper(time.Millisecond, 45), func(time.Duration) { b.Add(1) }, nil),
	)

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("group failed: %v", err)
	}
	if a.Load() != 30 || b.Load() != 45 {
		t.Errorf("frames a=%d b=%d", a.Load(), b.Load())
	}
}

func TestGuard(t *testing.T) {
	if err := Guard("x", 1, func() {}); err != nil {
		t.Errorf("unexpected frame error: %v", err)
	}
	err := Guard("x", 2, func() { panic(42) })
	if err == nil || err.Value != 42 {
		t.Errorf("guard did not capture panic: %+v", err)
	}
}
