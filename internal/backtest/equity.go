package backtest

import (
	"BacktestLab/internal/calculator"
	"BacktestLab/internal/model"
)

// SimulateEquity replays the signal sequence into a unit-normalized equity
// curve under the lag-one execution model: the signal generated on bar i-1
// takes economic effect at bar i, priced at bar i-1's close. A same-bar
// return is never applied to the signal that produced it, which keeps the
// curve free of look-ahead bias. A sell on the final bar therefore realizes
// nothing here, even though the trade ledger still books it.
func SimulateEquity(s *calculator.Series, signals []model.Signal) []model.EquityPoint {
	n := s.Len()
	if n == 0 {
		return nil
	}
	curve := make([]model.EquityPoint, n)
	curve[0] = model.EquityPoint{Date: s.Bars[0].Date, Equity: 1.0}

	long := false
	entryPrice := 0.0
	for i := 1; i < n; i++ {
		equity := curve[i-1].Equity
		switch {
		case signals[i-1] == model.Buy:
			long = true
			entryPrice = s.Bars[i-1].Close
		case signals[i-1] == model.Sell && long:
			long = false
			exitPrice := s.Bars[i-1].Close
			equity *= 1 + (exitPrice-entryPrice)/entryPrice
		}
		curve[i] = model.EquityPoint{Date: s.Bars[i].Date, Equity: equity}
	}
	return curve
}
