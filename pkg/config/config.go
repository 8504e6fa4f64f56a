// Package config loads the trading configuration from a JSON file with
// optional environment overrides. All numeric policy values (indicator
// weights, fusion weights, thresholds, trade fractions) live here as named,
// documented fields so strategies are tunable without code changes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/quantbench/sentiment-trader/internal/backtest"
	"github.com/quantbench/sentiment-trader/internal/fusion"
	"github.com/quantbench/sentiment-trader/internal/indicators"
)

// Config is the full configuration for an analysis or backtest run.
type Config struct {
	Symbol   string `json:"symbol"`
	DataFile string `json:"data_file,omitempty"`

	// Seed drives the synthetic price generator and the sentiment
	// surrogate. Fixed by default so runs replay deterministically.
	Seed int64 `json:"seed"`

	Indicators indicators.Config `json:"indicators"`
	Fusion     fusion.Config     `json:"fusion"`
	Backtest   backtest.Config   `json:"backtest"`
}

// Default returns the standard configuration for the given symbol.
func Default(symbol string) Config {
	return Config{
		Symbol:     symbol,
		Seed:       42,
		Indicators: indicators.DefaultConfig(),
		Fusion:     fusion.DefaultConfig(),
		Backtest:   backtest.DefaultConfig(symbol),
	}
}

// Load reads a JSON config file and applies environment overrides on top.
// A missing .env file is not an error; a missing config file is.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default("BTCUSDT")
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	cfg.Backtest.Symbol = cfg.Symbol

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays TRADER_* environment variables, loading a local .env
// first when present.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("TRADER_SYMBOL"); v != "" {
		c.Symbol = v
		c.Backtest.Symbol = v
	}
	if v := os.Getenv("TRADER_DATA_FILE"); v != "" {
		c.DataFile = v
	}
	if v := os.Getenv("TRADER_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = seed
		}
	}
	if v := os.Getenv("TRADER_INITIAL_CASH"); v != "" {
		if cash, err := strconv.ParseFloat(v, 64); err == nil {
			c.Backtest.InitialCash = cash
		}
	}
	if v := os.Getenv("TRADER_MIN_CONFIDENCE"); v != "" {
		if mc, err := strconv.ParseFloat(v, 64); err == nil {
			c.Fusion.MinConfidence = mc
		}
	}
}

// Validate checks the combined configuration.
func (c Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol must not be empty")
	}
	if err := c.Fusion.Validate(); err != nil {
		return fmt.Errorf("fusion config: %w", err)
	}
	if err := c.Backtest.Validate(); err != nil {
		return fmt.Errorf("backtest config: %w", err)
	}
	w := c.Indicators.Weights
	if sum := w.RSI + w.MACD + w.Bollinger + w.Trend; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("indicator weights must sum to 1, got %.3f", sum)
	}
	return nil
}
