package calculator

import (
	"math"

	"BacktestLab/internal/model"
)

// Series is the indicator-augmented working series: the trimmed bar
// sequence plus one named column per requested WindowSpec, index-aligned
// with Bars.
type Series struct {
	Bars    []model.Bar
	columns map[string][]float64
}

// Len returns the number of bars in the working series.
func (s *Series) Len() int {
	return len(s.Bars)
}

// Value returns the named indicator value at index i, or NaN when the
// column was never requested.
func (s *Series) Value(name string, i int) float64 {
	col, ok := s.columns[name]
	if !ok {
		return math.NaN()
	}
	return col[i]
}

// Column returns the full slice for a named indicator, or nil when absent.
// The slice is shared with the series and must not be mutated.
func (s *Series) Column(name string) []float64 {
	return s.columns[name]
}
