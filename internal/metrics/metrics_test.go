package metrics

import (
	"testing"

	"github.com/san-kum/driftscroll/internal/scroll"
)

func TestPeakMomentum(t *testing.T) {
	m := NewPeakMomentum()
	m.Observe(scroll.State{Velocity: 120}, 1)
	m.Observe(scroll.State{Velocity: -460}, 2)
	m.Observe(scroll.State{Velocity: 30}, 3)

	if m.Value() != 460 {
		t.Errorf("peak = %v, want 460", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear peak")
	}
}

func TestTravel(t *testing.T) {
	m := NewTravel()
	for i, p := range []float64{0, 40, 100, 60} {
		m.Observe(scroll.State{Position: p}, uint64(i))
	}
	if m.Value() != 140 {
		t.Errorf("travel = %v, want 140", m.Value())
	}
}

func TestBoundViolations(t *testing.T) {
	tests := []struct {
		name     string
		state    scroll.State
		violates bool
	}{
		{"inside", scroll.State{Target: 500, Position: 40, Limit: 1000}, false},
		{"at limit", scroll.State{Target: 1000, Position: 1000, Limit: 1000}, false},
		{"target past limit", scroll.State{Target: 1200, Position: 40, Limit: 1000}, true},
		{"negative position", scroll.State{Target: 0, Position: -1, Limit: 1000}, true},
		{"zero limit at origin", scroll.State{Limit: 0}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m := NewBoundViolations()
			m.Observe(tt.state, 1)
			if got := m.Value() > 0; got != tt.violates {
				t.Errorf("violation = %v, want %v", got, tt.violates)
			}
		})
	}
}

func TestOvershoots(t *testing.T) {
	m := NewOvershoots()
	m.Observe(scroll.State{Target: 500, Position: 40}, 1)
	m.Observe(scroll.State{Target: 500, Position: 480}, 2)
	if m.Value() != 0 {
		t.Fatalf("approach counted as overshoot")
	}
	m.Observe(scroll.State{Target: 500, Position: 520}, 3)
	if m.Value() != 1 {
		t.Errorf("overshoots = %v, want 1", m.Value())
	}

	// a new target is not an overshoot
	m.Observe(scroll.State{Target: 600, Position: 520}, 4)
	m.Observe(scroll.State{Target: 100, Position: 530}, 5)
	if m.Value() != 1 {
		t.Errorf("retarget counted as overshoot: %v", m.Value())
	}
}

func TestSettle(t *testing.T) {
	m := NewSettle(0.5)
	for _, v := range []float64{460, 20, 0.6, 0.4, 0} {
		m.Observe(scroll.State{Velocity: v}, 0)
	}
	if m.Value() != 3 {
		t.Errorf("moving frames = %v, want 3", m.Value())
	}
}

func TestDefaultNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
