// Package timeline binds named scenes to ranges of scroll progress and
// reports when the reader enters or leaves them.
package timeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/driftscroll/internal/scroll"
	"github.com/san-kum/driftscroll/internal/signal"
)

// Scene covers progress in [Start, End). A scene ending at 1 also holds
// progress == 1.
type Scene struct {
	Name  string  `yaml:"name" json:"name"`
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
}

func (s Scene) Contains(p float64) bool {
	if p >= s.Start && p < s.End {
		return true
	}
	return s.End >= 1 && p == 1
}

// Local maps progress onto [0, 1] within the scene.
func (s Scene) Local(p float64) float64 {
	if s.End <= s.Start {
		return 0
	}
	return scroll.Clamp((p-s.Start)/(s.End-s.Start), 0, 1)
}

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

type Transition struct {
	Scene     Scene
	Entered   bool
	Direction Direction
	Frame     uint64
}

func (t Transition) String() string {
	verb := "leave"
	if t.Entered {
		verb = "enter"
	}
	return fmt.Sprintf("%s %s (%s)", verb, t.Scene.Name, t.Direction)
}

type Handler func(Transition)

type Timeline struct {
	reader signal.Reader
	scenes []Scene

	mu       sync.RWMutex
	active   []bool
	progress float64
	handlers []Handler
	frames   uint64
}

func Validate(scenes []Scene) error {
	for i, s := range scenes {
		if s.Name == "" {
			return fmt.Errorf("scene %d: empty name", i)
		}
		if s.Start < 0 || s.End > 1 || s.End <= s.Start {
			return fmt.Errorf("scene %s: range [%v, %v) outside [0, 1]", s.Name, s.Start, s.End)
		}
	}
	return nil
}

func New(reader signal.Reader, scenes []Scene) (*Timeline, error) {
	if err := Validate(scenes); err != nil {
		return nil, err
	}
	return &Timeline{
		reader: reader,
		scenes: scenes,
		active: make([]bool, len(scenes)),
	}, nil
}

func (t *Timeline) OnTransition(h Handler) {
	t.mu.Lock()
	t.handlers = append(t.handlers, h)
	t.mu.Unlock()
}

// Frame polls progress once and fires handlers for every scene whose
// membership changed since the last frame. Leaves fire before enters.
func (t *Timeline) Frame(dt time.Duration) {
	snap := t.reader.Snapshot()

	t.mu.Lock()
	t.frames++
	dir := Forward
	if snap.Progress < t.progress || (snap.Progress == t.progress && snap.Momentum < 0) {
		dir = Backward
	}
	t.progress = snap.Progress

	var leaves, enters []Transition
	for i, s := range t.scenes {
		in := s.Contains(snap.Progress)
		if in == t.active[i] {
			continue
		}
		t.active[i] = in
		tr := Transition{Scene: s, Entered: in, Direction: dir, Frame: snap.Frame}
		if in {
			enters = append(enters, tr)
		} else {
			leaves = append(leaves, tr)
		}
	}
	handlers := t.handlers
	t.mu.Unlock()

	for _, tr := range append(leaves, enters...) {
		for _, h := range handlers {
			h(tr)
		}
	}
}

func (t *Timeline) Active() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.scenes))
	for i, s := range t.scenes {
		if t.active[i] {
			names = append(names, s.Name)
		}
	}
	return names
}

// LocalProgress is the named scene's own progress at the last frame.
func (t *Timeline) LocalProgress(name string) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, s := range t.scenes {
		if s.Name == name {
			return s.Local(t.progress), true
		}
	}
	return 0, false
}

func (t *Timeline) Scenes() []Scene { return t.scenes }
