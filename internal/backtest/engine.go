// Package backtest replays a price series through the fusion strategy,
// executing simulated trades against a virtual portfolio and deriving
// strategy performance metrics from the run.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantbench/sentiment-trader/internal/fusion"
	"github.com/quantbench/sentiment-trader/internal/indicators"
	"github.com/quantbench/sentiment-trader/internal/monitoring"
	"github.com/quantbench/sentiment-trader/internal/sentiment"
	"github.com/quantbench/sentiment-trader/pkg/types"
)

// Caller contract violations. A malformed series is a configuration error,
// not a degradation case.
var (
	ErrEmptySeries     = errors.New("backtest: price series is empty")
	ErrUnorderedSeries = errors.New("backtest: price series must be strictly time-ordered without duplicate timestamps")
)

// Default simulation parameters.
const (
	DefaultInitialCash  = 10000.0
	DefaultEvalStride   = 6
	DefaultLookback     = 24
	DefaultBuyFraction  = 0.5
	DefaultSellFraction = 0.5
	DefaultMinCash      = 100.0
	DefaultMinPosition  = 0.001
)

// Side is the direction of a simulated trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Trade is one executed simulated trade. Trades are appended to the log in
// execution order and never mutated or removed.
type Trade struct {
	Timestamp   time.Time   `json:"timestamp"`
	Side        Side        `json:"side"`
	Price       float64     `json:"price"`
	AssetAmount float64     `json:"asset_amount"`
	CashValue   float64     `json:"cash_value"`
	SignalKind  fusion.Kind `json:"triggering_signal_kind"`
	Confidence  float64     `json:"confidence"`
}

// ValuePoint is the portfolio value observed at one evaluation tick.
type ValuePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Value     float64   `json:"value"`
}

// Result aggregates a full backtest run. It is created once when the run
// finishes (or is cancelled between ticks) and is read-only thereafter.
type Result struct {
	InitialValue    float64         `json:"initial_value"`
	FinalValue      float64         `json:"final_value"`
	TotalReturn     float64         `json:"total_return"`
	BenchmarkReturn float64         `json:"benchmark_return"`
	TradeLog        []Trade         `json:"trade_log"`
	SignalLog       []fusion.Signal `json:"signal_log"`
	WinRate         float64         `json:"win_rate"`
	MaxDrawdown     float64         `json:"max_drawdown"`
	SharpeRatio     float64         `json:"sharpe_ratio"`

	// ValueSeries backs the drawdown/Sharpe computation and the equity
	// curve in reports; it is not part of the serialized record.
	ValueSeries []ValuePoint `json:"-"`
}

// Outperformance is the strategy return in excess of buy-and-hold.
func (r *Result) Outperformance() float64 {
	return r.TotalReturn - r.BenchmarkReturn
}

// Config holds the simulation parameters.
type Config struct {
	Symbol       string  `json:"symbol"`
	InitialCash  float64 `json:"initial_cash"`
	EvalStride   int     `json:"eval_stride"`
	Lookback     int     `json:"lookback"`
	BuyFraction  float64 `json:"buy_fraction"`
	SellFraction float64 `json:"sell_fraction"`
	MinCash      float64 `json:"min_cash"`
	MinPosition  float64 `json:"min_position"`
}

// DefaultConfig returns the standard simulation parameters: evaluate every
// 6th sample once 24 samples of history exist, trading 50% fractions.
func DefaultConfig(symbol string) Config {
	return Config{
		Symbol:       symbol,
		InitialCash:  DefaultInitialCash,
		EvalStride:   DefaultEvalStride,
		Lookback:     DefaultLookback,
		BuyFraction:  DefaultBuyFraction,
		SellFraction: DefaultSellFraction,
		MinCash:      DefaultMinCash,
		MinPosition:  DefaultMinPosition,
	}
}

// Validate checks the config invariants.
func (c Config) Validate() error {
	if c.InitialCash <= 0 {
		return fmt.Errorf("initial_cash must be positive, got %.2f", c.InitialCash)
	}
	if c.EvalStride < 1 {
		return fmt.Errorf("eval_stride must be at least 1, got %d", c.EvalStride)
	}
	if c.Lookback < 1 {
		return fmt.Errorf("lookback must be at least 1, got %d", c.Lookback)
	}
	if c.BuyFraction <= 0 || c.BuyFraction > 1 {
		return fmt.Errorf("buy_fraction must be in (0,1], got %.2f", c.BuyFraction)
	}
	if c.SellFraction <= 0 || c.SellFraction > 1 {
		return fmt.Errorf("sell_fraction must be in (0,1], got %.2f", c.SellFraction)
	}
	return nil
}

// Simulator is the stateful trade-execution loop. One instance runs one
// backtest at a time; it is not safe for concurrent ticks. Independent
// simulators share no state and may run in parallel.
type Simulator struct {
	cfg        Config
	indicators *indicators.Engine
	fusion     *fusion.Engine
	sentiment  sentiment.Source
	metrics    *monitoring.Collector
	log        zerolog.Logger

	cash     float64
	holdings float64
	trades   []Trade
	values   []ValuePoint
	signals  []fusion.Signal
}

// NewSimulator creates a simulator with all collaborators passed explicitly.
// The metrics collector may be nil when instrumentation is not wanted.
func NewSimulator(
	cfg Config,
	ind *indicators.Engine,
	fus *fusion.Engine,
	src sentiment.Source,
	collector *monitoring.Collector,
	log zerolog.Logger,
) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = sentiment.NewNeutralSource()
	}
	return &Simulator{
		cfg:        cfg,
		indicators: ind,
		fusion:     fus,
		sentiment:  src,
		metrics:    collector,
		log:        log.With().Str("component", "backtest").Str("symbol", cfg.Symbol).Logger(),
	}, nil
}

// Run replays the series tick by tick and returns the aggregate result.
//
// Ticks advance by the evaluation stride once the lookback is satisfied;
// each tick sees only the history up to its own sample. Cancellation is
// honored between ticks only: on ctx cancellation Run returns the result
// populated up to the last completed tick together with the ctx error.
func (s *Simulator) Run(ctx context.Context, series []types.PriceSample) (*Result, error) {
	if err := validateSeries(series); err != nil {
		return nil, err
	}

	s.reset()
	s.log.Info().
		Int("samples", len(series)).
		Float64("initial_cash", s.cfg.InitialCash).
		Msg("starting backtest")

	for i := s.cfg.Lookback - 1; i < len(series); i += s.cfg.EvalStride {
		select {
		case <-ctx.Done():
			s.log.Warn().Int("tick_index", i).Msg("backtest cancelled between ticks")
			return s.finalize(series), ctx.Err()
		default:
		}
		s.step(ctx, series[:i+1])
	}

	result := s.finalize(series)
	s.log.Info().
		Float64("final_value", result.FinalValue).
		Float64("total_return", result.TotalReturn).
		Int("trades", len(result.TradeLog)).
		Msg("backtest complete")
	return result, nil
}

// step evaluates one tick: snapshot the indicators over the trailing window,
// fetch sentiment, fuse, execute, and record the portfolio value.
func (s *Simulator) step(ctx context.Context, window []types.PriceSample) {
	snap := s.indicators.Snapshot(window)
	techScore := s.indicators.Score(snap)

	sentWindow := sentiment.Window{End: snap.Timestamp}
	if len(window) > s.cfg.Lookback {
		sentWindow.Start = window[len(window)-s.cfg.Lookback].Timestamp
	} else {
		sentWindow.Start = window[0].Timestamp
	}

	sent, err := s.sentiment.FetchSentiment(ctx, sentWindow)
	if err != nil {
		// Source failure degrades to technical-only scoring, it does not
		// abort the run.
		s.log.Warn().Err(err).Time("tick", snap.Timestamp).Msg("sentiment fetch failed, using zero-confidence signal")
		sent = types.SentimentSignal{}
	}
	if sent.Confidence < fusion.MinUsableSentimentConfidence {
		s.metrics.RecordSentimentFallback()
	}

	sig := s.fusion.Fuse(techScore, sent, snap)
	s.signals = append(s.signals, sig)
	s.metrics.RecordSignal(s.cfg.Symbol, sig.Kind.String(), sig.Confidence)

	s.execute(sig)

	value := s.cash + s.holdings*snap.Price
	s.values = append(s.values, ValuePoint{
		Timestamp: snap.Timestamp,
		Price:     snap.Price,
		Value:     value,
	})
	s.metrics.RecordTick(s.cfg.Symbol, snap.Price, value)
}

// execute applies the execution policy for one signal. The confidence gate
// is already enforced at classification time: any non-Hold kind cleared the
// minimum confidence, so only the capital and position floors are checked
// here. Fills are idealized at the tick price.
func (s *Simulator) execute(sig fusion.Signal) {
	switch {
	case sig.Kind.IsBuy() && s.cash > s.cfg.MinCash:
		spend := s.cash * s.cfg.BuyFraction
		amount := spend / sig.ReferencePrice
		s.cash -= spend
		s.holdings += amount
		s.record(sig, SideBuy, amount, spend)

	case sig.Kind.IsSell() && s.holdings > s.cfg.MinPosition:
		amount := s.holdings * s.cfg.SellFraction
		proceeds := amount * sig.ReferencePrice
		s.holdings -= amount
		s.cash += proceeds
		s.record(sig, SideSell, amount, proceeds)
	}
}

func (s *Simulator) record(sig fusion.Signal, side Side, amount, cashValue float64) {
	trade := Trade{
		Timestamp:   sig.Timestamp,
		Side:        side,
		Price:       sig.ReferencePrice,
		AssetAmount: amount,
		CashValue:   cashValue,
		SignalKind:  sig.Kind,
		Confidence:  sig.Confidence,
	}
	s.trades = append(s.trades, trade)
	s.metrics.RecordTrade(s.cfg.Symbol, string(side), cashValue)
	s.log.Info().
		Str("side", string(side)).
		Float64("price", trade.Price).
		Float64("amount", amount).
		Float64("confidence", trade.Confidence).
		Msg("trade executed")
}

// finalize marks the portfolio to the last series price and derives the
// performance metrics.
func (s *Simulator) finalize(series []types.PriceSample) *Result {
	finalPrice := series[len(series)-1].Price
	finalValue := s.cash + s.holdings*finalPrice

	result := &Result{
		InitialValue:    s.cfg.InitialCash,
		FinalValue:      finalValue,
		TotalReturn:     (finalValue - s.cfg.InitialCash) / s.cfg.InitialCash,
		BenchmarkReturn: benchmarkReturn(series),
		TradeLog:        s.trades,
		SignalLog:       s.signals,
		WinRate:         winRate(s.trades),
		MaxDrawdown:     maxDrawdown(s.values),
		SharpeRatio:     sharpeRatio(s.values),
		ValueSeries:     s.values,
	}
	return result
}

func (s *Simulator) reset() {
	s.cash = s.cfg.InitialCash
	s.holdings = 0
	s.trades = nil
	s.values = nil
	s.signals = nil
}

// validateSeries enforces the price source contract: non-empty, strictly
// time-ordered, no duplicate timestamps.
func validateSeries(series []types.PriceSample) error {
	if len(series) == 0 {
		return ErrEmptySeries
	}
	for i := 1; i < len(series); i++ {
		if !series[i].Timestamp.After(series[i-1].Timestamp) {
			return fmt.Errorf("%w: sample %d at %s does not advance past %s",
				ErrUnorderedSeries, i, series[i].Timestamp, series[i-1].Timestamp)
		}
	}
	return nil
}
