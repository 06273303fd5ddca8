package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo", "rest" or "mock"
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
		Ticker   string `yaml:"ticker"`
		Days     int    `yaml:"days"`
	} `yaml:"data_source"`
	Strategy struct {
		Lookback         int     `yaml:"lookback"`
		MinDistance      int     `yaml:"min_distance"`
		BuyThresholdPct  float64 `yaml:"buy_threshold_pct"`
		SellThresholdPct float64 `yaml:"sell_threshold_pct"`
		NumPeaks         int     `yaml:"num_peaks"`
		NumTroughs       int     `yaml:"num_troughs"`
	} `yaml:"strategy"`
	Backtest struct {
		InitialCapital float64 `yaml:"initial_capital"`
		PositionSize   float64 `yaml:"position_size"`
	} `yaml:"backtest"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Journal struct {
		LatestFile string `yaml:"latest_file"`
		LogFile    string `yaml:"log_file"`
	} `yaml:"journal"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("TICKER"); v != "" {
		cfg.DataSource.Ticker = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		var capital float64
		if _, err := fmt.Sscanf(v, "%f", &capital); err == nil {
			cfg.Backtest.InitialCapital = capital
		}
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Ticker == "" {
		cfg.DataSource.Ticker = "SPY"
	}
	if cfg.DataSource.Days == 0 {
		cfg.DataSource.Days = 300
	}
	if cfg.Strategy.Lookback == 0 {
		cfg.Strategy.Lookback = 60
	}
	if cfg.Strategy.MinDistance == 0 {
		cfg.Strategy.MinDistance = 5
	}
	if cfg.Strategy.BuyThresholdPct == 0 {
		cfg.Strategy.BuyThresholdPct = 2.0
	}
	if cfg.Strategy.SellThresholdPct == 0 {
		cfg.Strategy.SellThresholdPct = 2.0
	}
	if cfg.Strategy.NumPeaks == 0 {
		cfg.Strategy.NumPeaks = 3
	}
	if cfg.Strategy.NumTroughs == 0 {
		cfg.Strategy.NumTroughs = 3
	}
	if cfg.Backtest.InitialCapital == 0 {
		cfg.Backtest.InitialCapital = 10000
	}
	if cfg.Backtest.PositionSize == 0 {
		cfg.Backtest.PositionSize = 1.0
	}
	if cfg.Schedule.DailyCron == "" {
		// After the NYSE close, Mon-Fri (server time assumed ET-aligned via TZ).
		cfg.Schedule.DailyCron = "0 30 16 * * 1-5"
	}
	if cfg.Journal.LatestFile == "" {
		cfg.Journal.LatestFile = "data/latest_signal.json"
	}
	if cfg.Journal.LogFile == "" {
		cfg.Journal.LogFile = "data/signal_journal.log"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/range_trader.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.DataSource.Provider == "rest" && c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required for the rest provider")
	}
	if c.Strategy.Lookback <= c.Strategy.MinDistance {
		return fmt.Errorf("strategy.lookback must exceed strategy.min_distance")
	}
	if c.Strategy.BuyThresholdPct < 0 || c.Strategy.SellThresholdPct < 0 {
		return fmt.Errorf("strategy thresholds must be non-negative")
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if c.Backtest.PositionSize <= 0 || c.Backtest.PositionSize > 1 {
		return fmt.Errorf("backtest.position_size must be in (0, 1]")
	}
	return nil
}
