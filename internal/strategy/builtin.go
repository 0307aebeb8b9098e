package strategy

import "BacktestLab/internal/calculator"

// Both built-ins exit the same way: close breaks above the previous bar's
// high. At index 0 there is no previous bar and the rule is false.
func closeAbovePrevHigh(i int, s *calculator.Series) bool {
	return i > 0 && s.Bars[i].Close > s.Bars[i-1].High
}

func init() {
	Register(Strategy{
		Name:        "pullback",
		Description: "buy pullbacks below the 10-day high less the mean 25-day range when the close sits in the bottom 30% of the bar",
		Specs: []calculator.WindowSpec{
			{Name: "high_10d_max", Source: calculator.SourceHigh, Window: 10, Agg: calculator.AggMax},
			{Name: "range_25d_mean", Source: calculator.SourceRange, Window: 25, Agg: calculator.AggMean},
		},
		Entry: func(i int, s *calculator.Series) bool {
			threshold := s.Value("high_10d_max", i) - s.Value("range_25d_mean", i)
			return s.Bars[i].Close < threshold && s.Bars[i].IBS() < 0.3
		},
		Exit: closeAbovePrevHigh,
	})

	Register(Strategy{
		Name:        "contraction",
		Description: "buy range contractions below the 6-day minimum range while the close holds above the 200-day moving average",
		Specs: []calculator.WindowSpec{
			{Name: "range_6d_min", Source: calculator.SourceRange, Window: 6, Agg: calculator.AggMin, Shift: 1},
			{Name: "sma_200", Source: calculator.SourceClose, Window: 200, Agg: calculator.AggMean},
		},
		Entry: func(i int, s *calculator.Series) bool {
			return s.Bars[i].Range() < s.Value("range_6d_min", i) &&
				s.Bars[i].Close > s.Value("sma_200", i)
		},
		Exit: closeAbovePrevHigh,
	})
}
