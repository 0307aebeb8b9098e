package collector

import "BacktestLab/internal/model"

// Fetcher defines the interface for retrieving historical daily bars from
// an external market-data source.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.Bar, error)
	Name() string
}
