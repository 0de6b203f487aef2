package shader

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/driftscroll/internal/scroll"
	"github.com/san-kum/driftscroll/internal/signal"
)

type mapSink map[string]float64

func (m mapSink) SetUniform(name string, v float64) { m[name] = v }

func TestShaderSmoothsTowardSignal(t *testing.T) {
	board := signal.NewBoard()
	sh := New(board, DefaultConfig())

	board.Publish(scroll.Snapshot{Momentum: 1000, Progress: 0.5})
	sh.Frame(time.Second / 60)

	u := sh.Uniforms()
	if math.Abs(u.Velocity-100) > 1e-9 {
		t.Errorf("velocity after one frame = %v, want 100", u.Velocity)
	}
	if u.Progress != 0.5 {
		t.Errorf("first frame should prime progress, got %v", u.Progress)
	}

	for i := 0; i < 200; i++ {
		sh.Frame(time.Second / 60)
	}
	u = sh.Uniforms()
	if math.Abs(u.Velocity-1000) > 1e-3 {
		t.Errorf("velocity did not settle: %v", u.Velocity)
	}
	if math.Abs(u.Time-201.0/60) > 1e-6 {
		t.Errorf("time = %v", u.Time)
	}
}

func TestShaderDistortionFollowsSpeed(t *testing.T) {
	board := signal.NewBoard()
	sh := New(board, DefaultConfig())
	sink := mapSink{}
	sh.SetSink(sink)

	board.Publish(scroll.Snapshot{Momentum: -3000})
	for i := 0; i < 300; i++ {
		sh.Frame(time.Second / 60)
	}
	if d := sh.Uniforms().Distortion; math.Abs(d-1) > 0.05 {
		t.Errorf("distortion at full speed = %v, want ~1", d)
	}

	board.Publish(scroll.Snapshot{})
	for i := 0; i < 600; i++ {
		sh.Frame(time.Second / 60)
	}
	if d := sh.Uniforms().Distortion; math.Abs(d) > 0.05 {
		t.Errorf("distortion at rest = %v, want ~0", d)
	}

	for _, name := range []string{"uTime", "uVelocity", "uProgress", "uDistortion"} {
		if _, ok := sink[name]; !ok {
			t.Errorf("uniform %s never set", name)
		}
	}
}
