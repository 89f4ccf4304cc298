// Package series converts a record's time-indexed values into labeled
// points suitable for plotting.
package series

import (
	"fmt"
	"math"
)

// Point is one plottable sample: an x-axis label and its value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Transform maps N chronological values to N points whose labels count
// hours back from now: for N samples the labels run "-Nhrs" … "-1hrs" in
// stored order. NaN values substitute 0. Empty input yields an empty
// sequence, which renderers treat as a distinct no-data state.
func Transform(values []float64) []Point {
	points := make([]Point, 0, len(values))
	n := len(values)
	for i, v := range values {
		if math.IsNaN(v) {
			v = 0
		}
		points = append(points, Point{
			Label: fmt.Sprintf("-%dhrs", n-i),
			Value: v,
		})
	}
	return points
}
