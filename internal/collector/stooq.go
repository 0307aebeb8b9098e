package collector

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"BacktestLab/internal/model"
)

// StooqFetcher implements Fetcher using the Stooq daily CSV download
// endpoint. It is the fallback source when Yahoo is unreachable.
type StooqFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewStooqFetcher creates a new fetcher with optional proxy support.
func NewStooqFetcher(baseURL, proxyURL string) *StooqFetcher {
	if baseURL == "" {
		baseURL = "https://stooq.com"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StooqFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *StooqFetcher) Name() string { return "stooq" }

// stooqSymbol maps a plain US ticker to Stooq's suffixed form. Symbols
// already carrying a market suffix or index prefix pass through.
func stooqSymbol(symbol string) string {
	s := strings.ToLower(symbol)
	if strings.ContainsAny(s, ".^") {
		return s
	}
	return s + ".us"
}

func (f *StooqFetcher) FetchDailyBars(symbol string, days int) ([]model.Bar, error) {
	endpoint := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", f.BaseURL, url.QueryEscape(stooqSymbol(symbol)))

	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("stooq fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stooq: status %d", resp.StatusCode)
	}

	bars, err := parseStooqCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stooq parse %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("stooq: no data returned for %s", symbol)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// parseStooqCSV reads the Date,Open,High,Low,Close,Volume CSV body.
func parseStooqCSV(r io.Reader) ([]model.Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	var bars []model.Bar
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "Date") {
			continue // header
		}
		if len(rec) < 5 {
			continue
		}
		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q", i, rec[0])
		}
		fields := make([]float64, 4)
		for j := 0; j < 4; j++ {
			v, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad number %q", i, rec[j+1])
			}
			fields[j] = v
		}
		volume := 0.0
		if len(rec) > 5 && rec[5] != "" {
			volume, _ = strconv.ParseFloat(rec[5], 64)
		}
		bars = append(bars, model.Bar{
			Date:   date,
			Open:   fields[0],
			High:   fields[1],
			Low:    fields[2],
			Close:  fields[3],
			Volume: volume,
		})
	}
	return bars, nil
}
