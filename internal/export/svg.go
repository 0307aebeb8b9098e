package export

import (
	"bytes"
	"fmt"
	"os"

	"BacktestLab/internal/model"
)

// EquityChartSVG renders the equity curve with buy/sell markers and a
// drawdown band underneath, mirroring the classic two-panel backtest plot.
func EquityChartSVG(width, height int, curve []model.EquityPoint, signals []model.Signal, title string) []byte {
	if width <= 0 {
		width = 960
	}
	if height <= 0 {
		height = 480
	}
	if len(curve) < 2 {
		return nil
	}

	margin := 40
	plotW := width - 2*margin
	equityH := (height - 3*margin) * 3 / 4
	ddH := (height - 3*margin) - equityH

	minY, maxY := curve[0].Equity, curve[0].Equity
	for _, p := range curve {
		if p.Equity < minY {
			minY = p.Equity
		}
		if p.Equity > maxY {
			maxY = p.Equity
		}
	}
	sx := float64(plotW) / float64(len(curve)-1)
	sy := float64(equityH) / (maxY - minY + 1e-9)

	var b bytes.Buffer
	fmt.Fprintf(&b, "<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d' viewBox='0 0 %d %d'>", width, height, width, height)
	b.WriteString("<rect width='100%' height='100%' fill='#ffffff'/>")
	fmt.Fprintf(&b, "<text x='%d' y='24' font-family='sans-serif' font-size='14'>%s</text>", margin, title)

	// Equity panel
	fmt.Fprintf(&b, "<g transform='translate(%d,%d)'>", margin, margin)
	fmt.Fprintf(&b, "<line x1='0' y1='0' x2='0' y2='%d' stroke='#cccccc'/>", equityH)
	fmt.Fprintf(&b, "<line x1='0' y1='%d' x2='%d' y2='%d' stroke='#cccccc'/>", equityH, plotW, equityH)
	b.WriteString("<polyline fill='none' stroke='#1f66d0' stroke-width='1.5' points='")
	for i, p := range curve {
		x := float64(i) * sx
		y := float64(equityH) - (p.Equity-minY)*sy
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", x, y)
	}
	b.WriteString("'/>")
	for i, sig := range signals {
		if sig == model.Hold || i >= len(curve) {
			continue
		}
		x := float64(i) * sx
		y := float64(equityH) - (curve[i].Equity-minY)*sy
		color := "#2e9e4f"
		if sig == model.Sell {
			color = "#d03030"
		}
		fmt.Fprintf(&b, "<circle cx='%.2f' cy='%.2f' r='3' fill='%s'/>", x, y, color)
	}
	b.WriteString("</g>")

	// Drawdown panel: filled area from the running peak.
	fmt.Fprintf(&b, "<g transform='translate(%d,%d)'>", margin, 2*margin+equityH)
	fmt.Fprintf(&b, "<line x1='0' y1='0' x2='%d' y2='0' stroke='#cccccc'/>", plotW)
	peak := curve[0].Equity
	minDD := 0.0
	dds := make([]float64, len(curve))
	for i, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		dds[i] = (p.Equity - peak) / peak
		if dds[i] < minDD {
			minDD = dds[i]
		}
	}
	sdd := 0.0
	if minDD < 0 {
		sdd = float64(ddH) / -minDD
	}
	b.WriteString("<polygon fill='#d03030' fill-opacity='0.3' stroke='none' points='0,0 ")
	for i, dd := range dds {
		fmt.Fprintf(&b, "%.2f,%.2f ", float64(i)*sx, -dd*sdd)
	}
	fmt.Fprintf(&b, "%.2f,0'/>", float64(len(dds)-1)*sx)
	b.WriteString("</g>")

	b.WriteString("</svg>")
	return b.Bytes()
}

// WriteEquityChart renders the chart to a file.
func WriteEquityChart(path string, curve []model.EquityPoint, signals []model.Signal, title string) error {
	svg := EquityChartSVG(960, 480, curve, signals, title)
	if svg == nil {
		return fmt.Errorf("not enough equity points to chart")
	}
	return os.WriteFile(path, svg, 0644)
}
