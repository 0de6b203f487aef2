package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/driftscroll/internal/engine"
)

// Line is one polyline of a chart; X is the sample index.
type Line struct {
	Values []float64
	Stroke string
	Dashed bool
}

// LinesToSVG draws all lines on shared axes.
func LinesToSVG(lines []Line, width, height int) string {
	n := 0
	minY, maxY := 0.0, 0.0
	first := true
	for _, l := range lines {
		n = max(n, len(l.Values))
		for _, v := range l.Values {
			if first {
				minY, maxY, first = v, v, false
			}
			minY, maxY = min(minY, v), max(maxY, v)
		}
	}
	if n < 2 {
		return ""
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, l := range lines {
		if len(l.Values) < 2 {
			continue
		}
		dash := ""
		if l.Dashed {
			dash = ` stroke-dasharray="4 3"`
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"%s d="M`, l.Stroke, dash))
		for i, v := range l.Values {
			x := float64(i) / float64(n-1) * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// RunToSVG charts target (dashed) against eased position, with frames
// spent rewinding shaded.
func RunToSVG(samples []engine.Sample, width, height int) string {
	target := make([]float64, len(samples))
	position := make([]float64, len(samples))
	for i, s := range samples {
		target[i] = s.State.Target
		position[i] = s.State.Position
	}

	svg := LinesToSVG([]Line{
		{Values: target, Stroke: "#555555", Dashed: true},
		{Values: position, Stroke: "#00ff00"},
	}, width, height)
	if svg == "" {
		return ""
	}

	var shade strings.Builder
	step := float64(width) / float64(len(samples)-1)
	for i, s := range samples {
		if s.Rewinding {
			shade.WriteString(fmt.Sprintf(`<rect x="%.1f" y="0" width="%.1f" height="%d" fill="#ff00ff" fill-opacity="0.08"/>
`, float64(i)*step, step, height))
		}
	}
	return strings.Replace(svg, "</svg>", shade.String()+"</svg>", 1)
}
