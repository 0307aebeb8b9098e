// Package export writes presentation artifacts (CSV files, an SVG equity
// chart) for a completed backtest run. Nothing here feeds back into the
// core pipeline.
package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"

	"BacktestLab/internal/model"
)

const dateLayout = "2006-01-02"

// WriteTradesCSV writes the trade ledger.
func WriteTradesCSV(path string, trades []model.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"entry_date", "exit_date", "entry_price", "exit_price", "return_pct"})
	for _, t := range trades {
		w.Write([]string{
			t.EntryDate.Format(dateLayout),
			t.ExitDate.Format(dateLayout),
			ftoa(t.EntryPrice),
			ftoa(t.ExitPrice),
			ftoa(t.ReturnPct),
		})
	}
	return w.Error()
}

// WriteSeriesCSV writes the signal-augmented table (date, close, signal,
// equity).
func WriteSeriesCSV(path string, rows []model.TableRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"date", "close", "signal", "equity"})
	for _, r := range rows {
		w.Write([]string{
			r.Date.Format(dateLayout),
			ftoa(r.Close),
			fmt.Sprintf("%d", int(r.Signal)),
			ftoa(r.Equity),
		})
	}
	return w.Error()
}

// WriteMonthlyCSV writes the year×month return grid with strategy and
// buy-and-hold yearly totals.
func WriteMonthlyCSV(path string, rows []model.MonthlyRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"year", "jan", "feb", "mar", "apr", "may", "jun",
		"jul", "aug", "sep", "oct", "nov", "dec", "strat_return", "bh_return"}
	w.Write(header)
	for _, row := range rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, fmt.Sprintf("%d", row.Year))
		for i := 0; i < 12; i++ {
			if math.IsNaN(row.Strategy[i]) {
				rec = append(rec, "")
			} else {
				rec = append(rec, ftoa(row.Strategy[i]))
			}
		}
		rec = append(rec, ftoa(row.StrategyTotal), ftoa(row.BuyHoldTotal))
		w.Write(rec)
	}
	return w.Error()
}

func ftoa(x float64) string { return fmt.Sprintf("%.6f", x) }
