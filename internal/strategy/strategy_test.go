package strategy

import (
	"testing"
	"time"

	"BacktestLab/internal/calculator"
	"BacktestLab/internal/model"
)

func TestRegistry_BuiltinsPresent(t *testing.T) {
	for _, name := range []string{"pullback", "contraction"} {
		st, ok := Lookup(name)
		if !ok {
			t.Fatalf("builtin %q not registered", name)
		}
		if st.Entry == nil || st.Exit == nil {
			t.Fatalf("%q missing rules", name)
		}
		if len(st.Specs) == 0 {
			t.Fatalf("%q declares no indicator windows", name)
		}
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	if _, ok := Lookup("nope"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestRegister_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register(Strategy{Name: "pullback"})
}

// flatBars builds n quiet bars (close c, range 2) ending before an
// appended custom tail.
func flatBars(n int, c float64) []model.Bar {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{
			Date:  start.AddDate(0, 0, i),
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	return bars
}

func TestPullback_EntryAndExitRules(t *testing.T) {
	st, _ := Lookup("pullback")

	bars := flatBars(30, 100)
	n := len(bars)
	// Deep weak bar: close below the 10-day-high minus mean-range
	// threshold (101-2=99) and in the bottom 30% of its range.
	bars[n-1].High = 101
	bars[n-1].Low = 95
	bars[n-1].Close = 96

	s, err := calculator.Apply(bars, st.Specs)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	last := s.Len() - 1
	if !st.Entry(last, s) {
		t.Error("expected entry on deep weak bar")
	}
	if st.Entry(last-1, s) {
		t.Error("unexpected entry on quiet bar")
	}

	// Exit: close breaking the previous bar's high.
	bars2 := flatBars(30, 100)
	bars2[len(bars2)-1].Close = 102
	bars2[len(bars2)-1].High = 103
	s2, err := calculator.Apply(bars2, st.Specs)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !st.Exit(s2.Len()-1, s2) {
		t.Error("expected exit when close breaks previous high")
	}
	if st.Exit(0, s2) {
		t.Error("exit must be false at index 0 (no previous bar)")
	}
}

func TestContraction_EntryRule(t *testing.T) {
	st, _ := Lookup("contraction")

	// Gently rising series keeps the close above its 200-day average.
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, 210)
	for i := range bars {
		c := 100 + float64(i)*0.1
		bars[i] = model.Bar{Date: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	// Last bar contracts: range 1 against a prior 6-day minimum of 2.
	n := len(bars) - 1
	bars[n].High = bars[n].Close + 0.5
	bars[n].Low = bars[n].Close - 0.5

	s, err := calculator.Apply(bars, st.Specs)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	last := s.Len() - 1
	if !st.Entry(last, s) {
		t.Error("expected entry on range contraction above the long average")
	}
	if st.Entry(last-1, s) {
		t.Error("unexpected entry without contraction")
	}
}
