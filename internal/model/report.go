package model

import "time"

// MetricsReport aggregates the performance of one backtest run.
//
// Sharpe is NaN when the daily return series has zero variance, and
// ProfitFactor is +Inf when there are no losing trades. Both are genuine
// sentinels and must survive to the presentation layer unclamped.
type MetricsReport struct {
	TotalTrades      int
	TotalReturn      float64 // fraction, 0.25 = +25%
	CAGR             float64
	Sharpe           float64
	MaxDrawdown      float64 // fraction, always <= 0
	WinRate          float64
	ProfitFactor     float64
	AvgTrade         float64 // percent
	AvgWin           float64 // percent, 0 when there are no winners
	AvgLoss          float64 // percent, 0 when there are no losers
	AnnualVolatility float64
}

// MonthlyRow holds one calendar year of monthly returns for the strategy
// and the passive buy-and-hold baseline. Months with no data are NaN.
type MonthlyRow struct {
	Year          int
	Strategy      [12]float64
	BuyHold       [12]float64
	StrategyTotal float64 // sum of the year's defined monthly returns
	BuyHoldTotal  float64
}

// TableRow is one row of the signal-augmented output table exposed to
// presentation layers (CLI, CSV export, charting).
type TableRow struct {
	Date   time.Time
	Close  float64
	Signal Signal
	Equity float64
}
