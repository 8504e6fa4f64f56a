// Package trader wires the indicator, sentiment, and fusion engines into the
// single-shot analysis flow: one fused signal from current market data.
package trader

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantbench/sentiment-trader/internal/fusion"
	"github.com/quantbench/sentiment-trader/internal/indicators"
	"github.com/quantbench/sentiment-trader/internal/sentiment"
	"github.com/quantbench/sentiment-trader/pkg/data"
	"github.com/quantbench/sentiment-trader/pkg/types"
)

// Analyzer produces one fused trading signal for an analysis window.
type Analyzer struct {
	indicators *indicators.Engine
	fusion     *fusion.Engine
	sentiment  sentiment.Source
	prices     data.PriceProvider
	log        zerolog.Logger
}

// NewAnalyzer creates an analyzer with all collaborators passed explicitly.
func NewAnalyzer(
	ind *indicators.Engine,
	fus *fusion.Engine,
	src sentiment.Source,
	prices data.PriceProvider,
	log zerolog.Logger,
) *Analyzer {
	if src == nil {
		src = sentiment.NewNeutralSource()
	}
	return &Analyzer{
		indicators: ind,
		fusion:     fus,
		sentiment:  src,
		prices:     prices,
		log:        log.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze fetches the price window ending now, scores it, and fuses in the
// sentiment for the same window. A failed or empty sentiment fetch degrades
// to technical-only scoring.
func (a *Analyzer) Analyze(ctx context.Context, lookback time.Duration) (fusion.Signal, error) {
	end := time.Now()
	start := end.Add(-lookback)

	series, err := a.prices.GetSeries(ctx, start, end)
	if err != nil {
		return fusion.Signal{}, fmt.Errorf("fetch price series: %w", err)
	}
	if len(series) == 0 {
		return fusion.Signal{}, fmt.Errorf("price provider %s returned no samples for the window", a.prices.GetName())
	}

	snap := a.indicators.Snapshot(series)
	techScore := a.indicators.Score(snap)

	sent, err := a.sentiment.FetchSentiment(ctx, sentiment.Window{Start: start, End: end})
	if err != nil {
		a.log.Warn().Err(err).Msg("sentiment fetch failed, using zero-confidence signal")
		sent = types.SentimentSignal{}
	}

	sig := a.fusion.Fuse(techScore, sent, snap)
	a.log.Info().
		Str("signal", sig.Kind.String()).
		Float64("confidence", sig.Confidence).
		Float64("combined_score", sig.CombinedScore).
		Msg("analysis complete")
	return sig, nil
}
