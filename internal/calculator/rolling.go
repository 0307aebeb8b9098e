package calculator

import (
	"fmt"
	"math"

	"BacktestLab/internal/model"
)

// Source selects the per-bar scalar a rolling window aggregates over.
type Source int

const (
	SourceClose Source = iota
	SourceOpen
	SourceHigh
	SourceLow
	SourceVolume
	SourceRange // high - low
	SourceIBS   // (close - low) / (high - low)
)

// Agg is the aggregation applied over a rolling window.
type Agg int

const (
	AggMax Agg = iota
	AggMin
	AggMean
)

// WindowSpec describes one rolling-window indicator. The value at bar i
// aggregates the Window source values ending Shift bars before i (Shift 0
// means the window ends at i itself). The value is undefined for the first
// Window-1+Shift bars.
type WindowSpec struct {
	Name   string
	Source Source
	Window int
	Agg    Agg
	Shift  int
}

func (w WindowSpec) validate() error {
	if w.Name == "" {
		return fmt.Errorf("window spec has no name")
	}
	if w.Window < 1 {
		return fmt.Errorf("%s: window must be >= 1, got %d", w.Name, w.Window)
	}
	if w.Shift < 0 {
		return fmt.Errorf("%s: shift must be >= 0, got %d", w.Name, w.Shift)
	}
	return nil
}

// undefined returns the number of leading bars this spec has no value for.
func (w WindowSpec) undefined() int {
	return w.Window - 1 + w.Shift
}

func sourceValue(b model.Bar, src Source) float64 {
	switch src {
	case SourceOpen:
		return b.Open
	case SourceHigh:
		return b.High
	case SourceLow:
		return b.Low
	case SourceVolume:
		return b.Volume
	case SourceRange:
		return b.Range()
	case SourceIBS:
		return b.IBS()
	default:
		return b.Close
	}
}

// roll computes one spec over the full source slice. Undefined positions
// hold NaN.
func roll(values []float64, spec WindowSpec) []float64 {
	n := len(values)
	out := make([]float64, n)
	head := spec.undefined()
	for i := 0; i < n && i < head; i++ {
		out[i] = math.NaN()
	}

	switch spec.Agg {
	case AggMean:
		// Sliding sum keeps the pass O(n) even for wide windows.
		sum := 0.0
		for i := 0; i < n; i++ {
			end := i - spec.Shift
			if end < 0 {
				continue
			}
			sum += values[end]
			if end >= spec.Window {
				sum -= values[end-spec.Window]
			}
			if i >= head {
				out[i] = sum / float64(spec.Window)
			}
		}
	default:
		for i := head; i < n; i++ {
			end := i - spec.Shift
			best := values[end]
			for j := end - spec.Window + 1; j < end; j++ {
				v := values[j]
				if spec.Agg == AggMax && v > best {
					best = v
				}
				if spec.Agg == AggMin && v < best {
					best = v
				}
			}
			out[i] = best
		}
	}
	return out
}

// Apply computes every requested window over the bar sequence and trims the
// leading rows where any column is still undefined, so the returned working
// series has a defined value in every requested column at every index.
//
// A bar sequence shorter than the widest window yields an empty series, not
// an error.
func Apply(bars []model.Bar, specs []WindowSpec) (*Series, error) {
	trim := 0
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, err
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("duplicate window spec name %q", spec.Name)
		}
		seen[spec.Name] = true
		if u := spec.undefined(); u > trim {
			trim = u
		}
	}

	columns := make(map[string][]float64, len(specs))
	if trim >= len(bars) {
		return &Series{columns: columns}, nil
	}

	// Source slices are shared between specs reading the same field.
	cache := make(map[Source][]float64)
	for _, spec := range specs {
		values, ok := cache[spec.Source]
		if !ok {
			values = make([]float64, len(bars))
			for i, b := range bars {
				values[i] = sourceValue(b, spec.Source)
			}
			cache[spec.Source] = values
		}
		columns[spec.Name] = roll(values, spec)[trim:]
	}

	return &Series{Bars: bars[trim:], columns: columns}, nil
}
