package backtest

import (
	"math"
	"sort"

	"BacktestLab/internal/model"
)

// MonthlyReturns resamples the equity curve and the raw close series into a
// calendar year×month return grid: each cell compounds that month's daily
// returns, for the strategy and for a passive buy-and-hold baseline. The
// per-year total is the sum of that year's monthly returns.
func MonthlyReturns(bars []model.Bar, curve []model.EquityPoint) []model.MonthlyRow {
	if len(bars) < 2 || len(curve) != len(bars) {
		return nil
	}

	// Growth factors per (year, month); a month absent from the data stays
	// at zero and is reported as NaN.
	type cell struct{ strat, hold float64 }
	months := make(map[int]*cell) // key: year*100 + month
	for i := 1; i < len(bars); i++ {
		y, m, _ := bars[i].Date.Date()
		key := y*100 + int(m)
		c, ok := months[key]
		if !ok {
			c = &cell{strat: 1, hold: 1}
			months[key] = c
		}
		c.strat *= curve[i].Equity / curve[i-1].Equity
		c.hold *= bars[i].Close / bars[i-1].Close
	}

	byYear := make(map[int]*model.MonthlyRow)
	for key, c := range months {
		year, month := key/100, key%100
		row, ok := byYear[year]
		if !ok {
			row = &model.MonthlyRow{Year: year}
			for i := 0; i < 12; i++ {
				row.Strategy[i] = math.NaN()
				row.BuyHold[i] = math.NaN()
			}
			byYear[year] = row
		}
		row.Strategy[month-1] = c.strat - 1
		row.BuyHold[month-1] = c.hold - 1
		row.StrategyTotal += c.strat - 1
		row.BuyHoldTotal += c.hold - 1
	}

	rows := make([]model.MonthlyRow, 0, len(byYear))
	for _, row := range byYear {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return rows
}
