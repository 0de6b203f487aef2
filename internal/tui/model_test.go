package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/driftscroll/internal/config"
	"github.com/san-kum/driftscroll/internal/integrators"
	"github.com/san-kum/driftscroll/internal/scroll"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	host, err := NewHost(config.DefaultConfig(), integrators.NewTimed(), nil)
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	return newModel(host, nil)
}

func update(m model, msg tea.Msg) model {
	next, _ := m.Update(msg)
	return next.(model)
}

// advance feeds n ticks spaced one frame interval apart.
func advance(m model, n int) model {
	now := m.lastFrame
	if now.IsZero() {
		now = time.Now()
	}
	for i := 0; i < n; i++ {
		now = now.Add(frameInterval)
		m = update(m, tickMsg(now))
	}
	return m
}

func finishLoading(m model) model {
	return advance(m, loadingFrames)
}

func TestInputIgnoredWhileLoading(t *testing.T) {
	m := newTestModel(t)

	m = update(m, tea.KeyMsg{Type: tea.KeyEnd})
	if got := m.host.engine.State().Target; got != 0 {
		t.Errorf("target moved to %v before ready", got)
	}
	if !strings.Contains(m.View(), "loading") {
		t.Error("expected loading splash")
	}

	m = finishLoading(m)
	if !m.host.capture.IsReady() {
		t.Fatal("capture not ready after loading")
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyEnd})
	if got, want := m.host.engine.State().Target, m.host.engine.Limit(); got != want {
		t.Errorf("target = %v, want limit %v", got, want)
	}
}

func TestMouseWheelScrollsLines(t *testing.T) {
	m := finishLoading(newTestModel(t))
	before := m.host.engine.State().Target

	m = update(m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := m.host.engine.State().Target - before; got != wheelLines*40 {
		t.Errorf("wheel down moved target by %v, want %v", got, wheelLines*40)
	}

	m = update(m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if got := m.host.engine.State().Target; got != before {
		t.Errorf("wheel up left target at %v, want %v", got, before)
	}
}

func TestRewindKey(t *testing.T) {
	m := finishLoading(newTestModel(t))
	m = update(m, tea.KeyMsg{Type: tea.KeyPgDown})
	m = advance(m, 30)

	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if !m.host.engine.Rewinding() {
		t.Error("expected engine to be rewinding")
	}
	m = advance(m, 1)
	if !strings.Contains(m.View(), "rewinding") {
		t.Error("view does not show rewind status")
	}
}

func TestWindowResizeChangesViewport(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	want := float64(40-headerRows-footerRows) * 40
	if got := m.host.engine.Viewport(); got != want {
		t.Errorf("viewport = %v, want %v", got, want)
	}
	if got := m.host.engine.Limit(); got != 4000-want {
		t.Errorf("limit = %v, want %v", got, 4000-want)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestSurfaceReceivesOffset(t *testing.T) {
	m := finishLoading(newTestModel(t))
	m = update(m, tea.KeyMsg{Type: tea.KeyEnd})
	m = advance(m, 10)
	if m.host.Offset() == 0 {
		t.Error("surface never received a position")
	}
	if !strings.Contains(m.View(), "│") {
		t.Error("document rows missing from view")
	}
}

type panicObserver struct {
	fired bool
}

func (p *panicObserver) OnStep(s scroll.State, f uint64) {
	if !p.fired {
		p.fired = true
		panic("bad frame")
	}
}

func TestPanickingFrameKeepsProgramAlive(t *testing.T) {
	m := newTestModel(t)
	m.host.Engine().AddObserver(&panicObserver{})

	m = advance(m, 3)

	if got := m.host.EngineLoop().Panics(); got != 1 {
		t.Errorf("panics = %d, want 1", got)
	}
	if got := m.host.Engine().Frame(); got != 3 {
		t.Errorf("engine frame = %d, want 3", got)
	}
	if len(m.history) != 3 {
		t.Errorf("history = %d samples, want 3", len(m.history))
	}
}
