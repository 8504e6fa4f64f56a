package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantbench/sentiment-trader/internal/fusion"
	"github.com/quantbench/sentiment-trader/internal/indicators"
	"github.com/quantbench/sentiment-trader/internal/sentiment"
	"github.com/quantbench/sentiment-trader/internal/trader"
	"github.com/quantbench/sentiment-trader/pkg/config"
	"github.com/quantbench/sentiment-trader/pkg/data"
	"github.com/quantbench/sentiment-trader/pkg/reporting"
)

func main() {
	var (
		symbol   = flag.String("symbol", "BTCUSDT", "Trading symbol")
		hours    = flag.Int("hours", 48, "Price lookback window in hours")
		live     = flag.Bool("live", false, "Fetch live prices from Bybit instead of synthetic data")
		interval = flag.String("interval", "60", "Bybit kline interval (live mode)")
		jsonOut  = flag.String("json", "", "Write the signal JSON to this path")
		verbose  = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	cfg := config.Default(*symbol)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider data.PriceProvider
	if *live {
		provider = data.NewBybitProvider("spot", cfg.Symbol, *interval)
	} else {
		provider = data.NewSyntheticProvider(cfg.Seed)
	}

	analyzer := trader.NewAnalyzer(
		indicators.NewEngine(cfg.Indicators),
		fusion.NewEngine(cfg.Fusion),
		sentiment.NewNeutralSource(),
		provider,
		log,
	)

	sig, err := analyzer.Analyze(ctx, time.Duration(*hours)*time.Hour)
	if err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}

	reporting.NewConsoleReporter().PrintSignal(sig)

	if *jsonOut != "" {
		if err := reporting.WriteSignalJSON(sig, *jsonOut); err != nil {
			log.Fatal().Err(err).Msg("failed to write signal JSON")
		}
		log.Info().Str("path", *jsonOut).Msg("signal written")
	}
}
