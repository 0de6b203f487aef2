package analysis

import (
	"strings"
)

// Point is one sample of the position/momentum portrait.
type Point struct{ X, Y float64 }

// Portrait pairs positions with momentum values sample by sample.
func Portrait(positions, momentum []float64) []Point {
	n := min(len(positions), len(momentum))
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = Point{X: positions[i], Y: momentum[i]}
	}
	return pts
}

// PortraitASCII draws points on a width x height grid with the zero
// momentum axis marked. Every settled ease ends on that axis.
func PortraitASCII(points []Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.1
	rangeX *= 1.1
	rangeY *= 1.2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	toRow := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }
	toCol := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }

	if minY <= 0 && minY+rangeY >= 0 {
		row := toRow(0)
		for col := 0; col < width; col++ {
			canvas[row][col] = '─'
		}
	}

	for _, p := range points {
		row, col := toRow(p.Y), toCol(p.X)
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
