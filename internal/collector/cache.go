package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"BacktestLab/internal/model"
)

// BarCache stores fetched bar series as JSON files so repeated runs on the
// same ticker skip the network. Entries expire after TTL.
type BarCache struct {
	Dir string
	TTL time.Duration
}

// NewBarCache creates the cache directory if needed.
func NewBarCache(dir string, ttl time.Duration) (*BarCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &BarCache{Dir: dir, TTL: ttl}, nil
}

type cacheEntry struct {
	FetchedAt time.Time   `json:"fetched_at"`
	Bars      []model.Bar `json:"bars"`
}

func (c *BarCache) path(symbol string) string {
	name := strings.ToLower(strings.ReplaceAll(symbol, "^", "_")) + ".json"
	return filepath.Join(c.Dir, name)
}

// Load returns the cached bars for a symbol, or false when the entry is
// missing, expired or unreadable.
func (c *BarCache) Load(symbol string) ([]model.Bar, bool) {
	data, err := os.ReadFile(c.path(symbol))
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if time.Since(entry.FetchedAt) > c.TTL {
		return nil, false
	}
	return entry.Bars, true
}

// Store writes the bars for a symbol, stamped with the current time.
func (c *BarCache) Store(symbol string, bars []model.Bar) error {
	entry := cacheEntry{FetchedAt: time.Now(), Bars: bars}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(symbol), data, 0644)
}
