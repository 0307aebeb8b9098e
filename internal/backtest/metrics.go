package backtest

import (
	"math"

	"BacktestLab/internal/model"
)

const tradingDaysPerYear = 252

// dailyReturns converts the equity curve into day-over-day percentage
// changes, with the first value fixed at 0.
func dailyReturns(curve []model.EquityPoint) []float64 {
	returns := make([]float64, len(curve))
	for i := 1; i < len(curve); i++ {
		returns[i] = curve[i].Equity/curve[i-1].Equity - 1
	}
	return returns
}

// meanStd returns the mean and sample standard deviation of xs.
func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}

// maxDrawdown returns the deepest percentage decline from the running peak
// equity. The result is <= 0 and exactly 0 for a non-decreasing curve.
func maxDrawdown(curve []model.EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}
	peak := curve[0].Equity
	dd := 0.0
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		if d := (p.Equity - peak) / peak; d < dd {
			dd = d
		}
	}
	return dd
}

// ComputeMetrics derives the aggregate performance report from the equity
// curve and the completed trades. Zero completed trades is not an error:
// the report is simply absent (nil), letting callers tell "ran but never
// traded" apart from a failure.
//
// Sharpe is NaN when the daily returns have zero variance, and ProfitFactor
// is +Inf when there are no losing trades; neither is clamped here.
func ComputeMetrics(curve []model.EquityPoint, trades []model.Trade) *model.MetricsReport {
	if len(trades) == 0 || len(curve) < 2 {
		return nil
	}

	first, last := curve[0], curve[len(curve)-1]
	totalReturn := last.Equity/first.Equity - 1

	cagr := 0.0
	if years := last.Date.Sub(first.Date).Hours() / 24 / 365; years > 0 {
		cagr = math.Pow(1+totalReturn, 1/years) - 1
	}

	mean, std := meanStd(dailyReturns(curve))
	sharpe := math.NaN()
	if std > 0 {
		sharpe = math.Sqrt(tradingDaysPerYear) * mean / std
	}

	var wins int
	var sumPct, grossWin, grossLoss, winPct, lossPct float64
	var losses int
	for _, t := range trades {
		sumPct += t.ReturnPct
		if t.ReturnPct > 0 {
			wins++
			grossWin += t.ReturnPct
			winPct += t.ReturnPct
		} else if t.ReturnPct < 0 {
			losses++
			grossLoss += -t.ReturnPct
			lossPct += t.ReturnPct
		}
	}

	profitFactor := math.Inf(1)
	if grossLoss > 0 {
		profitFactor = grossWin / grossLoss
	}
	avgWin, avgLoss := 0.0, 0.0
	if wins > 0 {
		avgWin = winPct / float64(wins)
	}
	if losses > 0 {
		avgLoss = lossPct / float64(losses)
	}

	return &model.MetricsReport{
		TotalTrades:      len(trades),
		TotalReturn:      totalReturn,
		CAGR:             cagr,
		Sharpe:           sharpe,
		MaxDrawdown:      maxDrawdown(curve),
		WinRate:          float64(wins) / float64(len(trades)),
		ProfitFactor:     profitFactor,
		AvgTrade:         sumPct / float64(len(trades)),
		AvgWin:           avgWin,
		AvgLoss:          avgLoss,
		AnnualVolatility: std * math.Sqrt(tradingDaysPerYear),
	}
}
