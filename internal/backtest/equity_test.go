package backtest

import (
	"math"
	"testing"

	"BacktestLab/internal/model"
	"BacktestLab/internal/strategy"
)

func TestSimulateEquity_StartsAtOne(t *testing.T) {
	s := mkSeries(t, 100, 110, 90)
	signals := GenerateSignals(s, strategy.Strategy{Entry: never, Exit: never})
	curve := SimulateEquity(s, signals)
	if curve[0].Equity != 1.0 {
		t.Fatalf("expected first equity point 1.0, got %v", curve[0].Equity)
	}
}

// A sell on the final bar books a trade in the ledger but realizes nothing
// in the lag-one equity curve: there is no bar after it.
func TestSimulateEquity_TrailingSellNotRealized(t *testing.T) {
	s := mkSeries(t, 100, 110, 90, 130)
	signals := GenerateSignals(s, strategy.Strategy{
		Entry: entryAt(0),
		Exit:  entryAt(3),
	})

	curve := SimulateEquity(s, signals)
	want := []float64{1.0, 1.0, 1.0, 1.0}
	for i, w := range want {
		if math.Abs(curve[i].Equity-w) > 1e-12 {
			t.Errorf("equity[%d]: expected %.4f, got %.4f", i, w, curve[i].Equity)
		}
	}

	trades := BuildTrades(s, signals)
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	tr := trades[0]
	if tr.EntryPrice != 100 || tr.ExitPrice != 130 {
		t.Fatalf("expected trade 100 -> 130, got %.2f -> %.2f", tr.EntryPrice, tr.ExitPrice)
	}
	if math.Abs(tr.ReturnPct-30.0) > 1e-9 {
		t.Fatalf("expected return 30.0%%, got %.4f%%", tr.ReturnPct)
	}
}

// With one more bar after the sell, the lag-one model realizes the return.
func TestSimulateEquity_LagOneRealization(t *testing.T) {
	s := mkSeries(t, 100, 110, 90, 130, 130)
	signals := GenerateSignals(s, strategy.Strategy{
		Entry: entryAt(0),
		Exit:  entryAt(3),
	})

	curve := SimulateEquity(s, signals)
	want := []float64{1.0, 1.0, 1.0, 1.0, 1.3}
	for i, w := range want {
		if math.Abs(curve[i].Equity-w) > 1e-12 {
			t.Errorf("equity[%d]: expected %.4f, got %.4f", i, w, curve[i].Equity)
		}
	}
}

// A signal at bar i never moves equity at bar i, only from i+1 on.
func TestSimulateEquity_NoSameBarEffect(t *testing.T) {
	s := mkSeries(t, 100, 120, 150, 150)
	signals := GenerateSignals(s, strategy.Strategy{
		Entry: entryAt(0),
		Exit:  entryAt(2),
	})
	curve := SimulateEquity(s, signals)
	// Sell fires at index 2 (close 150); equity there must still be flat.
	if curve[2].Equity != 1.0 {
		t.Fatalf("same-bar effect: equity[2] = %.4f, want 1.0", curve[2].Equity)
	}
	if math.Abs(curve[3].Equity-1.5) > 1e-12 {
		t.Fatalf("equity[3] = %.4f, want 1.5", curve[3].Equity)
	}
}

func TestSimulateEquity_CompoundsAcrossTrades(t *testing.T) {
	s := mkSeries(t, 100, 110, 110, 100, 120, 120)
	signals := []model.Signal{model.Buy, model.Sell, model.Hold, model.Buy, model.Sell, model.Hold}
	curve := SimulateEquity(s, signals)
	// Trade 1: 100 -> 110 (+10%) realized at index 2.
	// Trade 2: 100 -> 120 (+20%) realized at index 5.
	want := []float64{1.0, 1.0, 1.1, 1.1, 1.1, 1.32}
	for i, w := range want {
		if math.Abs(curve[i].Equity-w) > 1e-9 {
			t.Errorf("equity[%d]: expected %.4f, got %.4f", i, w, curve[i].Equity)
		}
	}
}

func TestSimulateEquity_EmptySeries(t *testing.T) {
	s := mkSeries(t)
	if curve := SimulateEquity(s, nil); curve != nil {
		t.Fatalf("expected nil curve for empty series, got %d points", len(curve))
	}
}
