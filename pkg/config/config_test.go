package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default("BTCUSDT")
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "BTCUSDT", cfg.Symbol)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 0.4, cfg.Fusion.SentimentWeight)
	assert.Equal(t, 0.6, cfg.Fusion.TechnicalWeight)
	assert.Equal(t, 10000.0, cfg.Backtest.InitialCash)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"symbol": "ETHUSDT",
		"seed": 7,
		"backtest": {"initial_cash": 25000}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ETHUSDT", cfg.Symbol)
	assert.Equal(t, "ETHUSDT", cfg.Backtest.Symbol, "backtest symbol follows the top-level symbol")
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 25000.0, cfg.Backtest.InitialCash)
	// Untouched sections keep their defaults.
	assert.Equal(t, 0.6, cfg.Fusion.MinConfidence)
	assert.Equal(t, 14, cfg.Indicators.RSIPeriod)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "read config file")
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"symbol": `)
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config file")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `{
		"symbol": "BTCUSDT",
		"fusion": {"sentiment_weight": 0.9, "technical_weight": 0.9, "min_confidence": 0.6}
	}`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "fusion config")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `{"symbol": "BTCUSDT"}`)

	t.Setenv("TRADER_SYMBOL", "SOLUSDT")
	t.Setenv("TRADER_SEED", "99")
	t.Setenv("TRADER_INITIAL_CASH", "5000")
	t.Setenv("TRADER_MIN_CONFIDENCE", "0.7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "SOLUSDT", cfg.Symbol)
	assert.Equal(t, "SOLUSDT", cfg.Backtest.Symbol)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 5000.0, cfg.Backtest.InitialCash)
	assert.Equal(t, 0.7, cfg.Fusion.MinConfidence)
}

func TestLoad_IgnoresUnparseableEnvNumbers(t *testing.T) {
	path := writeConfig(t, `{"symbol": "BTCUSDT"}`)

	t.Setenv("TRADER_SEED", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestValidate_IndicatorWeights(t *testing.T) {
	cfg := Default("BTCUSDT")
	cfg.Indicators.Weights.RSI = 0.9
	assert.ErrorContains(t, cfg.Validate(), "indicator weights")
}

func TestValidate_EmptySymbol(t *testing.T) {
	cfg := Default("BTCUSDT")
	cfg.Symbol = ""
	assert.Error(t, cfg.Validate())
}
