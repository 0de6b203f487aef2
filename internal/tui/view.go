package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	headerRows = 3
	footerRows = 15
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var fillers = []string{
	"the page drifts toward where you asked it to be",
	"every frame closes eight percent of the gap",
	"momentum is just the distance still to go",
	"progress is position over limit, never more than one",
	"press r and the whole document eases home",
}

func (m model) View() string {
	if m.loading > 0 {
		return m.splash()
	}

	var b strings.Builder
	snap := m.host.board.Snapshot()

	status := green.Render("ready")
	if snap.Rewinding {
		status = magenta.Render("rewinding")
	}
	b.WriteString(cyan.Render("driftscroll") + dim.Render("  ·  ") + status + "\n")
	b.WriteString(m.progressBar(snap.Progress) + "\n\n")

	b.WriteString(m.document())

	st := m.host.engine.State()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s\n",
		dim.Render("pos"), white.Render(fmt.Sprintf("%7.1f", st.Position)),
		dim.Render("target"), white.Render(fmt.Sprintf("%7.1f", st.Target)),
		dim.Render("momentum"), yellow.Render(fmt.Sprintf("%+7.1f", st.Velocity)),
		dim.Render("limit"), white.Render(fmt.Sprintf("%6.0f", st.Limit)),
	))
	b.WriteString(dimmer.Render(fmt.Sprintf("%s · %.0f fps", m.host.engine.IntegratorName(), m.fps)) + "\n")

	u := m.host.shader.Uniforms()
	b.WriteString(fmt.Sprintf("%s velocity %+.1f  progress %.3f  distortion %.3f\n",
		cyan.Render("shader"), u.Velocity, u.Progress, u.Distortion))

	mod := m.host.mod
	interval := "rest"
	if d := mod.TickInterval(); d > 0 {
		interval = d.String()
	}
	audioLabel := cyan.Render("audio ")
	if m.muted {
		audioLabel = dim.Render("muted ")
	}
	b.WriteString(fmt.Sprintf("%s level %.2f  cutoff %4.0fHz  tick %s\n", audioLabel, mod.Level(), mod.Cutoff(), interval))

	active := strings.Join(m.host.timeline.Active(), ", ")
	if active == "" {
		active = "none"
	}
	b.WriteString(fmt.Sprintf("%s %s", cyan.Render("scenes"), white.Render(active)))
	if tr := m.host.Transitions(); len(tr) > 0 {
		b.WriteString(dim.Render("  last: " + tr[len(tr)-1]))
	}
	b.WriteString("\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(max(m.width-12, 10)),
			asciigraph.Caption("momentum"),
		)
		b.WriteString(dim.Render(graph) + "\n")
	}

	b.WriteString(dimmer.Render("wheel/↑↓/pgup/pgdn/space/home/end scroll · r rewind · m mute · q quit"))
	return b.String()
}

func (m model) splash() string {
	frac := 1 - float64(m.loading)/loadingFrames
	return "\n\n  " + cyan.Render("driftscroll") + "\n\n  " +
		dim.Render("loading ") + m.bar(frac, 30) + "\n\n  " +
		dimmer.Render("input is ignored until the page is ready")
}

func (m model) progressBar(p float64) string {
	return m.bar(p, max(m.width-10, 10)) + dim.Render(fmt.Sprintf(" %3.0f%%", p*100))
}

func (m model) bar(frac float64, width int) string {
	filled := int(math.Round(math.Max(0, math.Min(frac, 1)) * float64(width)))
	return green.Render(strings.Repeat("█", filled)) + dimmer.Render(strings.Repeat("░", width-filled))
}

// document renders the rows of the virtual page under the current offset.
// One row is one line of LineHeight pixels.
func (m model) document() string {
	lineHeight := m.host.cfg.Input.LineHeight
	content := m.host.cfg.Layout.Content
	total := int(content / lineHeight)
	first := int(float64(m.host.Offset()) / lineHeight)
	limit := m.host.engine.Limit()

	labels := make(map[int]string)
	for _, sc := range m.host.cfg.Scenes {
		labels[int(sc.Start*limit/lineHeight)] = sc.Name
	}

	var b strings.Builder
	for i := 0; i < m.pageRows(); i++ {
		line := first + i
		if line >= total {
			b.WriteString("\n")
			continue
		}
		gutter := dimmer.Render(fmt.Sprintf("%5d │ ", line))
		if name, ok := labels[line]; ok {
			b.WriteString(gutter + magenta.Render("▍"+name) + "\n")
			continue
		}
		text := fillers[line%len(fillers)]
		text = text[:len(text)-(line*7)%(len(text)/2)]
		b.WriteString(gutter + dim.Render(text) + "\n")
	}
	return b.String()
}
