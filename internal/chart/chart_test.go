package chart

import (
	"strings"
	"testing"

	"aveenis/internal/series"
)

func TestRenderEmptyIsNoData(t *testing.T) {
	if got := Render(nil, 60, 10); got != NoData {
		t.Errorf("Render(nil) = %q, want %q", got, NoData)
	}
	if got := Render([]series.Point{}, 60, 10); got != NoData {
		t.Errorf("Render(empty) = %q, want %q", got, NoData)
	}
}

func TestRowForDomainBorders(t *testing.T) {
	if got := rowFor(DomainMax, 11); got != 0 {
		t.Errorf("rowFor(max) = %d, want 0", got)
	}
	if got := rowFor(DomainMin, 11); got != 10 {
		t.Errorf("rowFor(min) = %d, want 10", got)
	}
	if got := rowFor(0, 11); got != 5 {
		t.Errorf("rowFor(0) = %d, want 5", got)
	}
}

func TestRowForClipsOutOfRange(t *testing.T) {
	if got := rowFor(250, 11); got != 0 {
		t.Errorf("rowFor(250) = %d, want clipped to 0", got)
	}
	if got := rowFor(-999, 11); got != 10 {
		t.Errorf("rowFor(-999) = %d, want clipped to 10", got)
	}
}

func TestRenderMarkersAndLabels(t *testing.T) {
	points := series.Transform([]float64{100, -100})
	out := Render(points, 40, 5)
	lines := strings.Split(out, "\n")

	// 5 plot rows + axis + label row.
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "•") {
		t.Errorf("top row has no marker for value 100: %q", lines[0])
	}
	if !strings.Contains(lines[4], "•") {
		t.Errorf("bottom row has no marker for value -100: %q", lines[4])
	}
	if !strings.HasPrefix(lines[0], "  100") {
		t.Errorf("top row label = %q, want 100 prefix", lines[0])
	}
	if !strings.HasPrefix(lines[4], " -100") {
		t.Errorf("bottom row label = %q, want -100 prefix", lines[4])
	}
	if !strings.Contains(lines[6], "-2hrs") || !strings.Contains(lines[6], "-1hrs") {
		t.Errorf("x labels missing: %q", lines[6])
	}
}

func TestRenderSinglePoint(t *testing.T) {
	out := Render(series.Transform([]float64{0}), 30, 5)
	if !strings.Contains(out, "•") {
		t.Errorf("single point not plotted:\n%s", out)
	}
}
