package backtest

import (
	"time"

	"BacktestLab/internal/calculator"
	"BacktestLab/internal/model"
)

// BuildTrades reconstructs completed round trips by scanning the signal
// sequence for buy→sell pairs. Bookkeeping uses the decision bar's close as
// the nominal fill price, not the lag-one convention the equity curve
// uses. A trailing unmatched buy contributes no trade.
func BuildTrades(s *calculator.Series, signals []model.Signal) []model.Trade {
	var trades []model.Trade
	long := false
	var entryPrice float64
	var entryDate time.Time

	for i, sig := range signals {
		switch {
		case sig == model.Buy && !long:
			long = true
			entryPrice = s.Bars[i].Close
			entryDate = s.Bars[i].Date
		case sig == model.Sell && long:
			long = false
			exitPrice := s.Bars[i].Close
			trades = append(trades, model.Trade{
				EntryDate:  entryDate,
				ExitDate:   s.Bars[i].Date,
				EntryPrice: entryPrice,
				ExitPrice:  exitPrice,
				ReturnPct:  (exitPrice - entryPrice) / entryPrice * 100,
			})
		}
	}
	return trades
}
