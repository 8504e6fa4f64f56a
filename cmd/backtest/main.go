package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantbench/sentiment-trader/internal/backtest"
	"github.com/quantbench/sentiment-trader/internal/fusion"
	"github.com/quantbench/sentiment-trader/internal/indicators"
	"github.com/quantbench/sentiment-trader/internal/monitoring"
	"github.com/quantbench/sentiment-trader/internal/sentiment"
	"github.com/quantbench/sentiment-trader/pkg/config"
	"github.com/quantbench/sentiment-trader/pkg/data"
	"github.com/quantbench/sentiment-trader/pkg/reporting"
)

func main() {
	var (
		configPath    = flag.String("config", "", "Path to JSON config file (optional)")
		symbol        = flag.String("symbol", "BTCUSDT", "Trading symbol")
		days          = flag.Int("days", 30, "Number of days to backtest")
		seed          = flag.Int64("seed", 0, "Override RNG seed for synthetic data and sentiment surrogate")
		dataFile      = flag.String("data", "", "CSV candle file to replay (synthetic data when empty)")
		sentimentMode = flag.String("sentiment", "surrogate", "Sentiment source: surrogate or neutral")
		jsonOut       = flag.String("json", "", "Write backtest result JSON to this path")
		excelOut      = flag.String("excel", "", "Write backtest result Excel workbook to this path")
		verbose       = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	log := newLogger(*verbose)

	cfg, err := loadConfig(*configPath, *symbol)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	end := time.Now()
	start := end.Add(-time.Duration(*days) * 24 * time.Hour)

	provider := newProvider(cfg, log)
	series, err := provider.GetSeries(ctx, start, end)
	if err != nil {
		log.Fatal().Err(err).Str("provider", provider.GetName()).Msg("failed to load price series")
	}
	log.Info().Str("provider", provider.GetName()).Int("samples", len(series)).Msg("price series loaded")

	src, err := newSentimentSource(*sentimentMode, cfg.Seed, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid sentiment mode")
	}

	sim, err := backtest.NewSimulator(
		cfg.Backtest,
		indicators.NewEngine(cfg.Indicators),
		fusion.NewEngine(cfg.Fusion),
		src,
		monitoring.NewCollector(),
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create simulator")
	}

	result, err := sim.Run(ctx, series)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("backtest failed")
	}
	if err != nil {
		log.Warn().Msg("backtest interrupted, reporting partial result")
	}

	reporting.NewConsoleReporter().PrintResult(result)

	if *jsonOut != "" {
		if err := reporting.WriteResultJSON(result, *jsonOut); err != nil {
			log.Fatal().Err(err).Msg("failed to write JSON report")
		}
		log.Info().Str("path", *jsonOut).Msg("JSON report written")
	}
	if *excelOut != "" {
		if err := reporting.WriteResultExcel(result, *excelOut); err != nil {
			log.Fatal().Err(err).Msg("failed to write Excel report")
		}
		log.Info().Str("path", *excelOut).Msg("Excel report written")
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func loadConfig(path, symbol string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := config.Default(symbol)
	return cfg, cfg.Validate()
}

func newProvider(cfg config.Config, log zerolog.Logger) data.PriceProvider {
	if cfg.DataFile != "" {
		return data.NewCSVProvider(cfg.DataFile, log)
	}
	return data.NewSyntheticProvider(cfg.Seed)
}

func newSentimentSource(mode string, seed int64, log zerolog.Logger) (sentiment.Source, error) {
	switch mode {
	case "surrogate":
		// Seeded noise instead of live sentiment: results measure the
		// technical strategy plus noise, not the fused strategy.
		log.Warn().Msg("using seeded sentiment surrogate, backtest fidelity is reduced")
		return sentiment.NewSurrogate(seed), nil
	case "neutral":
		return sentiment.NewNeutralSource(), nil
	default:
		return nil, fmt.Errorf("unknown sentiment mode %q (want surrogate or neutral)", mode)
	}
}
