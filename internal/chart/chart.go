// Package chart renders a labeled value sequence as a terminal line chart.
package chart

import (
	"fmt"
	"strings"

	"aveenis/internal/series"
)

// The value domain is fixed regardless of the data range; values outside
// it are clipped to the border rows, matching how the hosted chart
// clipped out-of-range samples.
const (
	DomainMin = -100.0
	DomainMax = 100.0
)

// NoData is the message renderers show for an empty sequence. An empty
// series is a distinct state, not an error.
const NoData = "No data available"

const gutter = 6 // y-axis label width including the axis rune

// Render draws the points as a line chart within the given total width
// and plot height. Empty input returns NoData.
func Render(points []series.Point, width, height int) string {
	if len(points) == 0 {
		return NoData
	}
	if height < 2 {
		height = 2
	}
	plotW := width - gutter
	if plotW < len(points) {
		plotW = len(points)
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, plotW)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	col := func(i int) int {
		if len(points) == 1 {
			return 0
		}
		return i * (plotW - 1) / (len(points) - 1)
	}

	// Plot markers, connecting consecutive points by per-column
	// interpolation.
	prevX, prevY := -1, -1
	for i := range points {
		x := col(i)
		y := rowFor(points[i].Value, height)
		if prevX >= 0 {
			for cx := prevX + 1; cx < x; cx++ {
				t := float64(cx-prevX) / float64(x-prevX)
				cy := prevY + int(t*float64(y-prevY)+0.5)
				grid[cy][cx] = '·'
			}
		}
		grid[y][x] = '•'
		prevX, prevY = x, y
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		b.WriteString(fmt.Sprintf("%5s┤", yLabel(y, height)))
		b.WriteString(string(grid[y]))
		b.WriteByte('\n')
	}

	// X axis with the first and last time labels.
	b.WriteString(strings.Repeat(" ", gutter-1))
	b.WriteString("┼")
	b.WriteString(strings.Repeat("─", plotW))
	b.WriteByte('\n')
	first, last := points[0].Label, points[len(points)-1].Label
	pad := plotW - len(first) - len(last)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(strings.Repeat(" ", gutter))
	b.WriteString(first)
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(last)
	return b.String()
}

// rowFor maps a value to a grid row, clamping to the fixed domain.
func rowFor(v float64, height int) int {
	if v > DomainMax {
		v = DomainMax
	}
	if v < DomainMin {
		v = DomainMin
	}
	frac := (DomainMax - v) / (DomainMax - DomainMin)
	row := int(frac*float64(height-1) + 0.5)
	if row < 0 {
		row = 0
	}
	if row > height-1 {
		row = height - 1
	}
	return row
}

// yLabel returns the domain value label for the border and zero rows.
func yLabel(row, height int) string {
	switch row {
	case 0:
		return fmt.Sprintf("%.0f", DomainMax)
	case rowFor(0, height):
		return "0"
	case height - 1:
		return fmt.Sprintf("%.0f", DomainMin)
	default:
		return ""
	}
}
