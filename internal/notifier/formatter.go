package notifier

import (
	"fmt"
	"math"
	"strings"

	"BacktestLab/internal/backtest"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatReport renders the full performance summary of one run as plain
// text for the CLI and for Telegram delivery.
func FormatReport(res *backtest.Result) string {
	var b strings.Builder

	bars := res.Series.Len()
	b.WriteString(fmt.Sprintf("Backtest %s | strategy %s\n", res.Symbol, res.Strategy))
	if bars > 0 {
		b.WriteString(fmt.Sprintf("Period: %s .. %s (%d bars)\n",
			res.Series.Bars[0].Date.Format("2006-01-02"),
			res.Series.Bars[bars-1].Date.Format("2006-01-02"), bars))
	}

	if res.NoTrades() {
		b.WriteString("\nNo trades executed. Try a different ticker or strategy.\n")
		return b.String()
	}

	m := res.Metrics
	b.WriteString("\nPerformance Metrics:\n")
	b.WriteString(fmt.Sprintf("%-20s: %d\n", "Total Trades", m.TotalTrades))
	b.WriteString(fmt.Sprintf("%-20s: %.2f%%\n", "Total Return", m.TotalReturn*100))
	b.WriteString(fmt.Sprintf("%-20s: %.2f%%\n", "CAGR", m.CAGR*100))
	b.WriteString(fmt.Sprintf("%-20s: %s\n", "Sharpe Ratio", formatSharpe(m.Sharpe)))
	b.WriteString(fmt.Sprintf("%-20s: %.2f%%\n", "Max Drawdown", m.MaxDrawdown*100))
	b.WriteString(fmt.Sprintf("%-20s: %.2f%%\n", "Win Rate", m.WinRate*100))
	b.WriteString(fmt.Sprintf("%-20s: %s\n", "Profit Factor", formatProfitFactor(m.ProfitFactor)))
	b.WriteString(fmt.Sprintf("%-20s: %.2f%%\n", "Avg Trade", m.AvgTrade))
	b.WriteString(fmt.Sprintf("%-20s: %.2f%%\n", "Avg Win", m.AvgWin))
	b.WriteString(fmt.Sprintf("%-20s: %.2f%%\n", "Avg Loss", m.AvgLoss))
	b.WriteString(fmt.Sprintf("%-20s: %.2f%%\n", "Volatility (Ann.)", m.AnnualVolatility*100))

	return b.String()
}

func formatSharpe(v float64) string {
	if math.IsNaN(v) {
		return "n/a (zero volatility)"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatProfitFactor(v float64) string {
	if math.IsInf(v, 1) {
		return "inf (no losing trades)"
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatMonthlyTable renders the year×month return grid for the strategy,
// with the buy-and-hold yearly total alongside for comparison.
func FormatMonthlyTable(res *backtest.Result) string {
	if len(res.Monthly) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Monthly Returns (%):\n")
	b.WriteString("Year ")
	for _, m := range monthNames {
		b.WriteString(fmt.Sprintf("%7s", m))
	}
	b.WriteString("    Strat      B&H\n")
	for _, row := range res.Monthly {
		b.WriteString(fmt.Sprintf("%d ", row.Year))
		for i := 0; i < 12; i++ {
			if math.IsNaN(row.Strategy[i]) {
				b.WriteString(fmt.Sprintf("%7s", "-"))
			} else {
				b.WriteString(fmt.Sprintf("%7.2f", row.Strategy[i]*100))
			}
		}
		b.WriteString(fmt.Sprintf(" %8.2f %8.2f\n", row.StrategyTotal*100, row.BuyHoldTotal*100))
	}
	return b.String()
}
