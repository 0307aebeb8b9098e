package backtest

import (
	"fmt"

	"BacktestLab/internal/calculator"
	"BacktestLab/internal/model"
	"BacktestLab/internal/strategy"
)

// Result holds everything one backtest run produced. Metrics is nil when
// no round trip completed; that is a valid outcome, not a failure.
type Result struct {
	Symbol   string
	Strategy string
	Series   *calculator.Series
	Signals  []model.Signal
	Equity   []model.EquityPoint
	Trades   []model.Trade
	Metrics  *model.MetricsReport
	Monthly  []model.MonthlyRow
}

// NoTrades reports whether the run completed without a single round trip.
func (r *Result) NoTrades() bool {
	return r.Metrics == nil
}

// Table returns the signal-augmented output table (date, close, signal,
// equity) consumed by presentation layers.
func (r *Result) Table() []model.TableRow {
	rows := make([]model.TableRow, r.Series.Len())
	for i := range rows {
		rows[i] = model.TableRow{
			Date:   r.Series.Bars[i].Date,
			Close:  r.Series.Bars[i].Close,
			Signal: r.Signals[i],
			Equity: r.Equity[i].Equity,
		}
	}
	return rows
}

// Run executes the full pipeline over an ordered bar sequence: rolling
// indicators, signal generation, lag-one equity simulation, trade
// reconstruction, metrics and monthly resampling. Bars are treated as
// read-only; the same input always produces identical output.
func Run(symbol string, bars []model.Bar, strat strategy.Strategy) (*Result, error) {
	series, err := calculator.Apply(bars, strat.Specs)
	if err != nil {
		return nil, fmt.Errorf("compute indicators for %s: %w", strat.Name, err)
	}

	signals := GenerateSignals(series, strat)
	equity := SimulateEquity(series, signals)
	trades := BuildTrades(series, signals)

	return &Result{
		Symbol:   symbol,
		Strategy: strat.Name,
		Series:   series,
		Signals:  signals,
		Equity:   equity,
		Trades:   trades,
		Metrics:  ComputeMetrics(equity, trades),
		Monthly:  MonthlyReturns(series.Bars, equity),
	}, nil
}
