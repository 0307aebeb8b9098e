// Package backtest turns a working price series and a strategy into
// signals, an equity curve, a trade ledger and performance metrics. The
// whole pipeline is a set of deterministic single-pass functions over
// already-fetched data.
package backtest

import (
	"BacktestLab/internal/calculator"
	"BacktestLab/internal/model"
	"BacktestLab/internal/strategy"
)

// GenerateSignals walks the series once, tracking a flat/long position
// flag. The entry rule is only consulted while flat and the exit rule only
// while long, which is what guarantees buys and sells strictly alternate
// starting with a buy. A trailing unmatched buy (open position at series
// end) is valid output.
func GenerateSignals(s *calculator.Series, strat strategy.Strategy) []model.Signal {
	signals := make([]model.Signal, s.Len())
	long := false
	for i := 0; i < s.Len(); i++ {
		switch {
		case !long && strat.Entry(i, s):
			signals[i] = model.Buy
			long = true
		case long && strat.Exit(i, s):
			signals[i] = model.Sell
			long = false
		default:
			signals[i] = model.Hold
		}
	}
	return signals
}
