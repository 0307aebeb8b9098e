package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"BacktestLab/internal/backtest"
	"BacktestLab/internal/collector"
	"BacktestLab/internal/export"
	"BacktestLab/internal/notifier"
	"BacktestLab/internal/recorder"
	"BacktestLab/internal/strategy"

	"github.com/robfig/cron/v3"
)

// Runner wires the collaborators of one configured backtest and executes
// it, either once or on a cron schedule (watch mode, re-fetching data each
// run).
type Runner struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Strategy  strategy.Strategy
	Recorder  recorder.Recorder
	Notifier  *notifier.TelegramNotifier // nil disables delivery
	OutputDir string
	WriteCSV  bool
	WriteSVG  bool
	Ctx       context.Context
}

// NewRunner creates a Runner.
func NewRunner(ctx context.Context, col *collector.Collector, strat strategy.Strategy, rec recorder.Recorder, tn *notifier.TelegramNotifier) *Runner {
	return &Runner{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Strategy:  strat,
		Recorder:  rec,
		Notifier:  tn,
		Ctx:       ctx,
	}
}

// Register schedules the backtest on a cron expression (with seconds).
func (r *Runner) Register(cronSpec string) error {
	if _, err := r.Cron.AddFunc(cronSpec, func() {
		if _, err := r.RunOnce(); err != nil {
			log.Printf("[ERROR] scheduled run: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register backtest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (r *Runner) Start() {
	r.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (r *Runner) Stop() {
	r.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunOnce executes the full pipeline: collect bars, run the backtest,
// print and deliver the report, export artifacts, record the run.
func (r *Runner) RunOnce() (*backtest.Result, error) {
	log.Printf("[INFO] running backtest: %s / %s", r.Collector.Symbol, r.Strategy.Name)

	bars, err := r.Collector.Collect()
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}

	res, err := backtest.Run(r.Collector.Symbol, bars, r.Strategy)
	if err != nil {
		return nil, err
	}

	report := notifier.FormatReport(res)
	fmt.Println(report)
	if !res.NoTrades() {
		fmt.Println(notifier.FormatMonthlyTable(res))
	} else {
		log.Println("[WARN] no trades executed")
	}

	if err := r.export(res); err != nil {
		log.Printf("[ERROR] export: %v", err)
	}

	run := &recorder.RunRecord{
		Symbol:   res.Symbol,
		Strategy: res.Strategy,
		Bars:     res.Series.Len(),
		Metrics:  res.Metrics,
	}
	if n := res.Series.Len(); n > 0 {
		run.StartDate = res.Series.Bars[0].Date
		run.EndDate = res.Series.Bars[n-1].Date
	}
	if err := r.Recorder.RecordRun(run, res.Trades); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	if r.Notifier != nil {
		if err := r.Notifier.SendWithRetry(r.Ctx, report, 3); err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		}
	}
	return res, nil
}

func (r *Runner) export(res *backtest.Result) error {
	if r.OutputDir == "" || (!r.WriteCSV && !r.WriteSVG) {
		return nil
	}
	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	prefix := filepath.Join(r.OutputDir, fmt.Sprintf("%s_%s", res.Symbol, res.Strategy))

	if r.WriteCSV {
		if err := export.WriteTradesCSV(prefix+"_trades.csv", res.Trades); err != nil {
			return fmt.Errorf("trades csv: %w", err)
		}
		if err := export.WriteSeriesCSV(prefix+"_series.csv", res.Table()); err != nil {
			return fmt.Errorf("series csv: %w", err)
		}
		if err := export.WriteMonthlyCSV(prefix+"_monthly_returns.csv", res.Monthly); err != nil {
			return fmt.Errorf("monthly csv: %w", err)
		}
		log.Printf("[INFO] CSV exports written to %s_*.csv", prefix)
	}
	if r.WriteSVG && len(res.Equity) >= 2 {
		title := fmt.Sprintf("Equity Curve %s / %s", res.Symbol, res.Strategy)
		if err := export.WriteEquityChart(prefix+"_equity.svg", res.Equity, res.Signals, title); err != nil {
			return fmt.Errorf("equity chart: %w", err)
		}
		log.Printf("[INFO] equity chart written to %s_equity.svg", prefix)
	}
	return nil
}
