package timeline

import (
	"testing"
	"time"

	"github.com/san-kum/driftscroll/internal/scroll"
	"github.com/san-kum/driftscroll/internal/signal"
)

var scenes = []Scene{
	{Name: "intro", Start: 0, End: 0.25},
	{Name: "descent", Start: 0.25, End: 0.7},
	{Name: "outro", Start: 0.6, End: 1},
}

func TestValidate(t *testing.T) {
	if err := Validate(scenes); err != nil {
		t.Fatalf("valid scenes rejected: %v", err)
	}

	tests := []struct {
		name  string
		scene Scene
	}{
		{"empty name", Scene{Start: 0, End: 1}},
		{"inverted", Scene{Name: "x", Start: 0.5, End: 0.2}},
		{"past end", Scene{Name: "x", Start: 0.5, End: 1.2}},
		{"negative", Scene{Name: "x", Start: -0.1, End: 0.2}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate([]Scene{tt.scene}); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestTimelineTransitions(t *testing.T) {
	board := signal.NewBoard()
	tl, err := New(board, scenes)
	if err != nil {
		t.Fatal(err)
	}

	var log []string
	tl.OnTransition(func(tr Transition) { log = append(log, tr.String()) })

	step := func(p, m float64) {
		board.Publish(scroll.Snapshot{Progress: p, Momentum: m})
		tl.Frame(time.Second / 60)
	}

	step(0, 0)
	step(0.3, 100)
	step(0.65, 100)
	step(1, 100)
	step(0.1, -500)

	expected := []string{
		"enter intro (forward)",
		"leave intro (forward)",
		"enter descent (forward)",
		"enter outro (forward)",
		"leave descent (forward)",
		"leave outro (backward)",
		"enter intro (backward)",
	}
	if len(log) != len(expected) {
		t.Fatalf("transitions = %v, want %v", log, expected)
	}
	for i := range expected {
		if log[i] != expected[i] {
			t.Errorf("transition %d = %q, want %q", i, log[i], expected[i])
		}
	}

	active := tl.Active()
	if len(active) != 1 || active[0] != "intro" {
		t.Errorf("active = %v", active)
	}
}

func TestLocalProgress(t *testing.T) {
	board := signal.NewBoard()
	tl, _ := New(board, scenes)

	board.Publish(scroll.Snapshot{Progress: 0.475})
	tl.Frame(0)

	got, ok := tl.LocalProgress("descent")
	if !ok || got < 0.4999 || got > 0.5001 {
		t.Errorf("descent local progress = %v, %v", got, ok)
	}
	if got, _ := tl.LocalProgress("outro"); got != 0 {
		t.Errorf("outro local progress before start = %v", got)
	}
	if _, ok := tl.LocalProgress("missing"); ok {
		t.Error("unknown scene reported")
	}
}

func TestSceneEndInclusiveAtOne(t *testing.T) {
	s := Scene{Name: "outro", Start: 0.6, End: 1}
	if !s.Contains(1) {
		t.Error("final scene should contain progress 1")
	}
	mid := Scene{Name: "mid", Start: 0.2, End: 0.6}
	if mid.Contains(0.6) {
		t.Error("scene end is exclusive")
	}
}
