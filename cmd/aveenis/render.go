package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"aveenis/internal/chart"
)

// Column layout: ticker gets a narrow fixed column, the numeric columns
// share a wider one so the headers line up with the cells.
const (
	tickerWidth = 10
	numWidth    = 14
)

func (m model) viewTable() string {
	var b strings.Builder
	b.WriteString(m.renderHeaderBar())
	b.WriteByte('\n')
	b.WriteString(m.renderColumnHeader())
	b.WriteByte('\n')
	b.WriteString(m.vp.View())
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m model) viewGraph() string {
	var b strings.Builder
	title := fmt.Sprintf(" Timeseries data for %s ", strings.ToUpper(m.graphTicker))
	b.WriteString(m.th.headerBar.Render(title))
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString(m.vp.View())
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m model) renderHeaderBar() string {
	title := " aveenis "
	if m.filtering {
		return m.th.headerBar.Render(title) + " filter: " + m.filterInput.View()
	}
	status := ""
	switch {
	case m.loading:
		status = " loading... "
	case m.table.Filter() != "":
		status = fmt.Sprintf(" filter: %q (%d shown) ", m.table.Filter(), len(m.table.VisibleRows()))
	}
	return m.th.headerBar.Render(title) + m.th.dim.Render(status)
}

// renderColumnHeader draws the column titles with the sort glyph on the
// active column. The digit hint mirrors the key that toggles each column.
func (m model) renderColumnHeader() string {
	sortKey, sortDir := m.table.Sort()
	var b strings.Builder
	for i, col := range m.table.Columns() {
		title := fmt.Sprintf("[%d]%s", i+1, col.Title)
		style := m.th.colHeader
		if col.Key == sortKey {
			title += sortDir.Glyph()
			style = m.th.sortedCol
		}
		b.WriteString(style.Render(padCell(title, colWidth(i))))
	}
	return b.String()
}

// renderRows renders the visible table body for the viewport.
func (m model) renderRows() string {
	rows := m.table.VisibleRows()
	if m.loading {
		return m.th.dim.Render("Fetching stock data...")
	}
	if len(rows) == 0 {
		if m.table.Filter() != "" {
			return m.th.dim.Render("No tickers match the filter.")
		}
		return m.th.dim.Render(chart.NoData)
	}

	var b strings.Builder
	for ri := range rows {
		hl := ri == m.selected
		for ci, col := range m.table.Columns() {
			cell := padCell(col.Text(&rows[ri]), colWidth(ci))
			b.WriteString(m.cellStyle(ci, hl).Render(cell))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m model) renderGraph() string {
	if m.graphWait {
		return m.th.dim.Render("Fetching timeseries...")
	}
	if len(m.graphPoints) == 0 {
		return m.th.dim.Render(chart.NoData)
	}
	w, h := m.vp.Width, m.vp.Height-3
	if h < 4 {
		h = 4
	}
	return m.th.chartLine.Render(chart.Render(m.graphPoints, w, h))
}

func (m model) renderFooter() string {
	help := " ↑/↓ select · enter graph · / filter · 1-9 sort · t theme · r refresh · q quit "
	if m.screen == screenGraph {
		help = " esc back · t theme · q quit "
	}
	line := m.th.footerBar.Render(help)
	if m.toast == "" {
		return line
	}
	style := m.th.toast
	if m.toastErr {
		style = m.th.toastError
	}
	return line + "\n" + style.Render(" "+m.toast+" ")
}

func (m model) cellStyle(colIdx int, hl bool) lipgloss.Style {
	if colIdx == 0 {
		if hl {
			return m.th.tickerHl
		}
		return m.th.ticker
	}
	if hl {
		return m.th.cellHl
	}
	return m.th.cell
}

func colWidth(i int) int {
	if i == 0 {
		return tickerWidth
	}
	return numWidth
}

// padCell right-pads (left-aligns) text into a fixed cell, truncating
// anything too long.
func padCell(text string, width int) string {
	r := []rune(text)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + strings.Repeat(" ", width-len(r))
}
