package backtest

import (
	"math"
	"testing"
	"time"

	"BacktestLab/internal/model"
)

func TestMonthlyReturns_CompoundsWithinMonths(t *testing.T) {
	// Two days in January, two in February.
	dates := []time.Time{
		time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
	}
	closes := []float64{100, 110, 110, 99}
	bars := make([]model.Bar, len(dates))
	curve := make([]model.EquityPoint, len(dates))
	equities := []float64{1, 1.1, 1.1, 1.21}
	for i := range dates {
		bars[i] = model.Bar{Date: dates[i], Open: closes[i], High: closes[i], Low: closes[i], Close: closes[i]}
		curve[i] = model.EquityPoint{Date: dates[i], Equity: equities[i]}
	}

	rows := MonthlyReturns(bars, curve)
	if len(rows) != 1 {
		t.Fatalf("expected 1 year row, got %d", len(rows))
	}
	row := rows[0]
	if row.Year != 2024 {
		t.Fatalf("expected year 2024, got %d", row.Year)
	}
	// January strategy: one daily return, 1.1/1.0 - 1 = +10%.
	if math.Abs(row.Strategy[0]-0.10) > 1e-9 {
		t.Errorf("jan strategy: expected 0.10, got %v", row.Strategy[0])
	}
	// February strategy: 1.1 -> 1.1 -> 1.21 compounds to +10%.
	if math.Abs(row.Strategy[1]-0.10) > 1e-9 {
		t.Errorf("feb strategy: expected 0.10, got %v", row.Strategy[1])
	}
	// February buy-and-hold: 110 -> 110 -> 99 is -10%.
	if math.Abs(row.BuyHold[1]-(-0.10)) > 1e-9 {
		t.Errorf("feb buy-and-hold: expected -0.10, got %v", row.BuyHold[1])
	}
	// Months with no data stay NaN.
	if !math.IsNaN(row.Strategy[5]) {
		t.Errorf("jun strategy: expected NaN, got %v", row.Strategy[5])
	}
	// Yearly totals sum the defined months.
	if math.Abs(row.StrategyTotal-0.20) > 1e-9 {
		t.Errorf("strategy total: expected 0.20, got %v", row.StrategyTotal)
	}
	if math.Abs(row.BuyHoldTotal-(0.10-0.10)) > 1e-9 {
		t.Errorf("buy-and-hold total: expected 0.00, got %v", row.BuyHoldTotal)
	}
}

func TestMonthlyReturns_SpansYears(t *testing.T) {
	dates := []time.Time{
		time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	bars := make([]model.Bar, len(dates))
	curve := make([]model.EquityPoint, len(dates))
	for i := range dates {
		bars[i] = model.Bar{Date: dates[i], Close: 100}
		curve[i] = model.EquityPoint{Date: dates[i], Equity: 1}
	}
	rows := MonthlyReturns(bars, curve)
	if len(rows) != 1 {
		t.Fatalf("expected only 2024 (no daily return lands in 2023), got %d rows", len(rows))
	}
	if rows[0].Year != 2024 {
		t.Fatalf("expected 2024, got %d", rows[0].Year)
	}
}

func TestMonthlyReturns_TooShort(t *testing.T) {
	bars := []model.Bar{{Date: time.Now(), Close: 100}}
	curve := []model.EquityPoint{{Date: time.Now(), Equity: 1}}
	if rows := MonthlyReturns(bars, curve); rows != nil {
		t.Fatalf("expected nil for single-bar input, got %d rows", len(rows))
	}
}
