// cmd/backtest evaluates a rule-based trading strategy against historical
// daily prices and reports performance statistics, a trade ledger and
// monthly returns.
//
// Usage:
//
//	backtest --ticker SPY --strategy pullback
//	backtest --list
//	backtest --watch    # re-run on the configured cron schedule
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BacktestLab/internal/collector"
	"BacktestLab/internal/config"
	"BacktestLab/internal/notifier"
	"BacktestLab/internal/recorder"
	"BacktestLab/internal/scheduler"
	"BacktestLab/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := flag.String("config", "configs/config.yaml", "Path to YAML config")
	ticker := flag.String("ticker", "", "Ticker symbol (overrides config)")
	stratName := flag.String("strategy", "", "Strategy name (overrides config)")
	watch := flag.Bool("watch", false, "Keep running and re-run on the configured cron schedule")
	list := flag.Bool("list", false, "List registered strategies and exit")
	flag.Parse()

	if *list {
		for _, name := range strategy.Names() {
			st, _ := strategy.Lookup(name)
			fmt.Printf("%-14s %s\n", name, st.Description)
		}
		return
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *ticker != "" {
		cfg.Ticker = *ticker
	}
	if *stratName != "" {
		cfg.Strategy = *stratName
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	strat, ok := strategy.Lookup(cfg.Strategy)
	if !ok {
		log.Fatalf("[FATAL] unknown strategy %q (known: %v)", cfg.Strategy, strategy.Names())
	}

	// Data source
	var fetcher collector.Fetcher
	switch cfg.Data.Source {
	case "stooq":
		fetcher = collector.NewStooqFetcher("", cfg.Proxy)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	cache, err := collector.NewBarCache(cfg.Data.CacheDir, time.Duration(cfg.Data.CacheTTLHours)*time.Hour)
	if err != nil {
		log.Printf("[WARN] bar cache disabled: %v", err)
		cache = nil
	}
	col := collector.NewCollector(fetcher, cache, cfg.Ticker, cfg.BarCount())

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Telegram delivery is optional
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := scheduler.NewRunner(ctx, col, strat, rec, tn)
	runner.OutputDir = cfg.Output.Dir
	runner.WriteCSV = cfg.Output.CSV
	runner.WriteSVG = cfg.Output.Chart

	if !*watch {
		if _, err := runner.RunOnce(); err != nil {
			log.Fatalf("[FATAL] backtest: %v", err)
		}
		return
	}

	if cfg.Schedule.Cron == "" {
		log.Fatal("[FATAL] watch mode requires schedule.cron in config")
	}
	if err := runner.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	runner.Start()
	defer runner.Stop()
	log.Printf("[INFO] watch mode: %s / %s on %q. Press Ctrl+C to stop.",
		cfg.Ticker, cfg.Strategy, cfg.Schedule.Cron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
