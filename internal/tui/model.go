package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/driftscroll/internal/consumers/audio"
	"github.com/san-kum/driftscroll/internal/input"
)

const (
	frameInterval = 16 * time.Millisecond
	maxFrameDt    = 100 * time.Millisecond
	loadingFrames = 45
	wheelLines    = 3
	historyLen    = 120
)

var teaKeys = map[string]input.Key{
	"down":   input.KeyDown,
	"j":      input.KeyDown,
	"up":     input.KeyUp,
	"k":      input.KeyUp,
	"pgdown": input.KeyPageDown,
	"pgup":   input.KeyPageUp,
	" ":      input.KeySpace,
	"space":  input.KeySpace,
	"home":   input.KeyHome,
	"end":    input.KeyEnd,
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	host   *Host
	player *audio.Player

	loading   int
	muted     bool
	lastFrame time.Time
	fps       float64
	history   []float64

	width  int
	height int
}

func newModel(host *Host, player *audio.Player) model {
	return model{
		host:    host,
		player:  player,
		loading: loadingFrames,
		history: make([]float64, 0, historyLen),
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.host.engine.Resize(m.host.cfg.Layout.Content, float64(m.pageRows())*m.host.cfg.Input.LineHeight)
		return m, nil
	case tickMsg:
		m.step(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "r":
		m.host.engine.Rewind()
		return m, nil
	case "m":
		if m.player != nil {
			m.muted = !m.muted
			m.player.SetMuted(m.muted)
		}
		return m, nil
	}
	if k, ok := teaKeys[msg.String()]; ok {
		m.host.capture.Key(k)
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		m.host.capture.Wheel(wheelLines, input.DeltaLine)
	case tea.MouseButtonWheelUp:
		m.host.capture.Wheel(-wheelLines, input.DeltaLine)
	}
}

func (m *model) step(now time.Time) {
	dt := frameInterval
	if !m.lastFrame.IsZero() {
		dt = min(now.Sub(m.lastFrame), maxFrameDt)
		if dt > 0 {
			m.fps = 1 / dt.Seconds()
		}
	}
	m.lastFrame = now

	if m.loading > 0 {
		m.loading--
		if m.loading == 0 {
			m.host.capture.Ready()
		}
	}

	snap := m.host.Tick(dt)
	m.history = append(m.history, snap.Momentum)
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

// pageRows is the number of terminal rows given to the scrolling document.
func (m model) pageRows() int {
	return max(m.height-headerRows-footerRows, 4)
}

// Run starts the consumer loops and blocks on the terminal program.
func Run(ctx context.Context, host *Host, player *audio.Player) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- host.Run(ctx) }()

	p := tea.NewProgram(newModel(host, player), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()

	cancel()
	if loopErr := <-errc; err == nil {
		err = loopErr
	}
	return err
}
