package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Ticker   string `yaml:"ticker"`
	Strategy string `yaml:"strategy"`
	Data     struct {
		Source        string `yaml:"source"` // "yahoo" or "stooq"
		Years         int    `yaml:"years"`
		CacheDir      string `yaml:"cache_dir"`
		CacheTTLHours int    `yaml:"cache_ttl_hours"`
	} `yaml:"data"`
	Output struct {
		Dir   string `yaml:"dir"`
		CSV   bool   `yaml:"csv"`
		Chart bool   `yaml:"chart"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty = one-shot mode only
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BACKTEST_TICKER"); v != "" {
		cfg.Ticker = v
	}
	if v := os.Getenv("BACKTEST_STRATEGY"); v != "" {
		cfg.Strategy = v
	}
	if v := os.Getenv("BACKTEST_DATA_SOURCE"); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv("BACKTEST_YEARS"); v != "" {
		if years, err := strconv.Atoi(v); err == nil {
			cfg.Data.Years = years
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Ticker == "" {
		cfg.Ticker = "SPY"
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "pullback"
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = "yahoo"
	}
	if cfg.Data.Years == 0 {
		cfg.Data.Years = 20
	}
	if cfg.Data.CacheDir == "" {
		cfg.Data.CacheDir = "data/cache"
	}
	if cfg.Data.CacheTTLHours == 0 {
		cfg.Data.CacheTTLHours = 24
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/backtests.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if c.Strategy == "" {
		return fmt.Errorf("strategy is required")
	}
	if c.Data.Years <= 0 {
		return fmt.Errorf("data.years must be positive")
	}
	if c.Data.Source != "yahoo" && c.Data.Source != "stooq" {
		return fmt.Errorf("data.source must be yahoo or stooq, got %q", c.Data.Source)
	}
	return nil
}

// BarCount returns the number of daily bars the configured history span
// needs, at roughly 252 trading days per year.
func (c *Config) BarCount() int {
	return c.Data.Years * 252
}
