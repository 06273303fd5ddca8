package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Ticker != "SPY" {
		t.Errorf("default ticker = %q, want SPY", cfg.DataSource.Ticker)
	}
	if cfg.Strategy.Lookback != 60 || cfg.Strategy.MinDistance != 5 {
		t.Errorf("default lookback/minDistance = %d/%d, want 60/5", cfg.Strategy.Lookback, cfg.Strategy.MinDistance)
	}
	if cfg.Strategy.BuyThresholdPct != 2.0 || cfg.Strategy.SellThresholdPct != 2.0 {
		t.Errorf("default thresholds = %v/%v, want 2/2", cfg.Strategy.BuyThresholdPct, cfg.Strategy.SellThresholdPct)
	}
	if cfg.Backtest.InitialCapital != 10000 || cfg.Backtest.PositionSize != 1.0 {
		t.Errorf("default backtest = %v/%v", cfg.Backtest.InitialCapital, cfg.Backtest.PositionSize)
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
telegram:
  bot_token: file-token
  chat_id: "12345"
data_source:
  ticker: QQQ
strategy:
  lookback: 90
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TICKER", "IWM")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("env should override file token, got %q", cfg.Telegram.BotToken)
	}
	if cfg.DataSource.Ticker != "IWM" {
		t.Errorf("env should override file ticker, got %q", cfg.DataSource.Ticker)
	}
	if cfg.Strategy.Lookback != 90 {
		t.Errorf("file lookback = %d, want 90", cfg.Strategy.Lookback)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("missing telegram credentials should fail validation")
	}

	cfg.Telegram.BotToken = "token"
	cfg.Telegram.ChatID = "chat"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Backtest.PositionSize = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("position size > 1 should fail validation")
	}
}
