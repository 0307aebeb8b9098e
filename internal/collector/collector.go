package collector

import (
	"fmt"
	"log"

	"BacktestLab/internal/model"
)

// Collector orchestrates bar retrieval: cache lookup, network fetch,
// validation and cache write-back. Bars it hands out are read-only; each
// downstream run recomputes everything from them.
type Collector struct {
	Fetcher Fetcher
	Cache   *BarCache // optional
	Symbol  string
	Days    int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, cache *BarCache, symbol string, days int) *Collector {
	return &Collector{Fetcher: fetcher, Cache: cache, Symbol: symbol, Days: days}
}

// Collect returns a validated daily bar sequence for the configured symbol.
func (c *Collector) Collect() ([]model.Bar, error) {
	if c.Cache != nil {
		if bars, ok := c.Cache.Load(c.Symbol); ok && len(bars) >= c.Days {
			log.Printf("[INFO] using cached bars for %s (%d bars)", c.Symbol, len(bars))
			if len(bars) > c.Days {
				bars = bars[len(bars)-c.Days:]
			}
			return bars, nil
		}
	}

	bars, err := c.Fetcher.FetchDailyBars(c.Symbol, c.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", c.Symbol, err)
	}
	if err := ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("invalid bars for %s: %w", c.Symbol, err)
	}

	if c.Cache != nil {
		if err := c.Cache.Store(c.Symbol, bars); err != nil {
			log.Printf("[WARN] cache store for %s failed: %v", c.Symbol, err)
		}
	}
	return bars, nil
}

// ValidateBars checks the invariants the backtest core relies on: a
// non-empty sequence with strictly increasing dates, no duplicate dates,
// and sane OHLC values.
func ValidateBars(bars []model.Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("no bars returned")
	}
	for i, b := range bars {
		if b.High < b.Low {
			return fmt.Errorf("bar %d (%s): high %.4f below low %.4f",
				i, b.Date.Format("2006-01-02"), b.High, b.Low)
		}
		if b.Close <= 0 || b.Open <= 0 {
			return fmt.Errorf("bar %d (%s): non-positive price", i, b.Date.Format("2006-01-02"))
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("bar %d (%s): date not after previous bar (%s)",
				i, b.Date.Format("2006-01-02"), bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}
