package recorder

import (
	"time"

	"BacktestLab/internal/model"
)

// RunRecord holds everything persisted about one backtest run. Metrics is
// nil for a run that completed without trades; such a run is still recorded
// so inactive strategies show up in the history.
type RunRecord struct {
	Symbol    string
	Strategy  string
	Bars      int
	StartDate time.Time
	EndDate   time.Time
	Metrics   *model.MetricsReport
}

// Recorder persists backtest runs for later comparison across strategies
// and tickers.
type Recorder interface {
	RecordRun(run *RunRecord, trades []model.Trade) error
	Close() error
}
