package backtest

import (
	"testing"
	"time"

	"BacktestLab/internal/calculator"
	"BacktestLab/internal/model"
	"BacktestLab/internal/strategy"
)

func mkSeries(t *testing.T, closes ...float64) *calculator.Series {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	s, err := calculator.Apply(bars, nil)
	if err != nil {
		t.Fatalf("build series: %v", err)
	}
	return s
}

func always(int, *calculator.Series) bool { return true }
func never(int, *calculator.Series) bool  { return false }

// entryAt returns a rule true only at the given indices.
func entryAt(indices ...int) strategy.Rule {
	set := map[int]bool{}
	for _, i := range indices {
		set[i] = true
	}
	return func(i int, _ *calculator.Series) bool { return set[i] }
}

func checkAlternation(t *testing.T, signals []model.Signal) {
	t.Helper()
	buys, sells := 0, 0
	expectBuy := true
	for i, sig := range signals {
		switch sig {
		case model.Buy:
			if !expectBuy {
				t.Fatalf("signal %d: buy while long", i)
			}
			buys++
			expectBuy = false
		case model.Sell:
			if expectBuy {
				t.Fatalf("signal %d: sell while flat", i)
			}
			sells++
			expectBuy = true
		}
	}
	if sells != buys && sells != buys-1 {
		t.Fatalf("count(sell)=%d not in {count(buy), count(buy)-1} for count(buy)=%d", sells, buys)
	}
}

func TestGenerateSignals_StrictAlternation(t *testing.T) {
	s := mkSeries(t, 100, 101, 102, 103, 104, 105)
	signals := GenerateSignals(s, strategy.Strategy{Entry: always, Exit: always})
	checkAlternation(t, signals)
	// Both rules always fire, so the machine must alternate every bar.
	want := []model.Signal{model.Buy, model.Sell, model.Buy, model.Sell, model.Buy, model.Sell}
	for i, sig := range signals {
		if sig != want[i] {
			t.Errorf("signal %d: expected %v, got %v", i, want[i], sig)
		}
	}
}

func TestGenerateSignals_NoEntryMeansAllHold(t *testing.T) {
	s := mkSeries(t, 100, 101, 102)
	signals := GenerateSignals(s, strategy.Strategy{Entry: never, Exit: always})
	for i, sig := range signals {
		if sig != model.Hold {
			t.Errorf("signal %d: expected HOLD, got %v", i, sig)
		}
	}
}

func TestGenerateSignals_TrailingOpenBuy(t *testing.T) {
	s := mkSeries(t, 100, 101, 102, 103)
	signals := GenerateSignals(s, strategy.Strategy{Entry: entryAt(2), Exit: never})
	checkAlternation(t, signals)
	if signals[2] != model.Buy {
		t.Fatalf("expected buy at index 2, got %v", signals[2])
	}
	if signals[3] != model.Hold {
		t.Fatalf("expected trailing hold, got %v", signals[3])
	}
}

func TestGenerateSignals_EntryNotReevaluatedWhileLong(t *testing.T) {
	s := mkSeries(t, 100, 101, 102, 103, 104)
	// Entry fires on every bar, exit never: exactly one buy must come out.
	signals := GenerateSignals(s, strategy.Strategy{Entry: always, Exit: never})
	buys := 0
	for _, sig := range signals {
		if sig == model.Buy {
			buys++
		}
	}
	if buys != 1 {
		t.Fatalf("expected exactly 1 buy, got %d", buys)
	}
}

func TestGenerateSignals_EmptySeries(t *testing.T) {
	s := mkSeries(t)
	signals := GenerateSignals(s, strategy.Strategy{Entry: always, Exit: always})
	if len(signals) != 0 {
		t.Fatalf("expected empty signal series, got %d", len(signals))
	}
}

func TestGenerateSignals_Idempotent(t *testing.T) {
	s := mkSeries(t, 100, 99, 98, 101, 97, 103, 96)
	strat := strategy.Strategy{
		Entry: func(i int, s *calculator.Series) bool { return s.Bars[i].Close < 99 },
		Exit:  func(i int, s *calculator.Series) bool { return s.Bars[i].Close > 100 },
	}
	a := GenerateSignals(s, strat)
	b := GenerateSignals(s, strat)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("signal %d differs between identical runs", i)
		}
	}
	checkAlternation(t, a)
}
