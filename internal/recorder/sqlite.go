package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"BacktestLab/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists backtest runs and their trade ledgers to a
// SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			strategy      TEXT NOT NULL,
			bars          INTEGER,
			start_date    TEXT,
			end_date      TEXT,
			total_trades  INTEGER,
			total_return  REAL,
			cagr          REAL,
			sharpe        REAL,
			max_drawdown  REAL,
			win_rate      REAL,
			profit_factor REAL,
			avg_trade     REAL,
			avg_win       REAL,
			avg_loss      REAL,
			volatility    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol ON runs(symbol, strategy)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL REFERENCES runs(id),
			entry_date  TEXT,
			exit_date   TEXT,
			entry_price REAL,
			exit_price  REAL,
			return_pct  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// sqlVal maps a metric to a SQL value, turning the NaN/Inf sentinels into
// NULL rather than corrupting the column.
func sqlVal(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord, trades []model.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	m := run.Metrics
	if m == nil {
		m = &model.MetricsReport{} // no-trades run: zero metrics row
	}
	res, err := tx.Exec(`INSERT INTO runs
		(timestamp, symbol, strategy, bars, start_date, end_date,
		 total_trades, total_return, cagr, sharpe, max_drawdown,
		 win_rate, profit_factor, avg_trade, avg_win, avg_loss, volatility)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.Symbol, run.Strategy, run.Bars,
		run.StartDate.Format("2006-01-02"), run.EndDate.Format("2006-01-02"),
		m.TotalTrades, sqlVal(m.TotalReturn), sqlVal(m.CAGR), sqlVal(m.Sharpe),
		sqlVal(m.MaxDrawdown), sqlVal(m.WinRate), sqlVal(m.ProfitFactor),
		sqlVal(m.AvgTrade), sqlVal(m.AvgWin), sqlVal(m.AvgLoss), sqlVal(m.AnnualVolatility),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, t := range trades {
		if _, err := tx.Exec(`INSERT INTO trades
			(run_id, entry_date, exit_date, entry_price, exit_price, return_pct)
			VALUES (?,?,?,?,?,?)`,
			runID, t.EntryDate.Format("2006-01-02"), t.ExitDate.Format("2006-01-02"),
			t.EntryPrice, t.ExitPrice, t.ReturnPct,
		); err != nil {
			return fmt.Errorf("insert trade: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
