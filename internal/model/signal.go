package model

import "time"

// Signal is the per-bar trading decision.
type Signal int

const (
	Hold Signal = 0
	Buy  Signal = 1
	Sell Signal = -1
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// EquityPoint is one point of the cumulative equity curve. The first point
// of every curve is fixed at 1.0.
type EquityPoint struct {
	Date   time.Time
	Equity float64
}

// Trade is one completed buy→sell round trip. Entry and exit prices are the
// closes of the bars the signals fired on; the equity curve intentionally
// lags execution by one bar, so the two views use different timing.
type Trade struct {
	EntryDate  time.Time
	ExitDate   time.Time
	EntryPrice float64
	ExitPrice  float64
	ReturnPct  float64
}
