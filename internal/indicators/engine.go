package indicators

import (
	"time"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

// Default indicator parameters.
const (
	DefaultRSIPeriod    = 14
	DefaultMACDFast     = 12
	DefaultMACDSlow     = 26
	DefaultMACDSignal   = 9
	DefaultBBPeriod     = 20
	DefaultBBStdDev     = 2.0
	DefaultSMAShort     = 20
	DefaultSMALong      = 50
	DefaultEMAShort     = 12
	DefaultEMALong      = 26
	DefaultVolumePeriod = 20

	// RSI classification bounds.
	RSIOverbought = 70.0
	RSIOversold   = 30.0
)

// ScoreWeights holds the relative weight of each sub-score in the technical
// score. These are policy constants, not fundamental law; tune via config.
type ScoreWeights struct {
	RSI       float64 `json:"rsi"`
	MACD      float64 `json:"macd"`
	Bollinger float64 `json:"bollinger"`
	Trend     float64 `json:"trend"`
}

// DefaultScoreWeights returns the standard sub-score weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{RSI: 0.30, MACD: 0.20, Bollinger: 0.25, Trend: 0.25}
}

// Config holds the indicator periods and score weights for an Engine.
type Config struct {
	RSIPeriod    int          `json:"rsi_period"`
	MACDFast     int          `json:"macd_fast"`
	MACDSlow     int          `json:"macd_slow"`
	MACDSignal   int          `json:"macd_signal"`
	BBPeriod     int          `json:"bb_period"`
	BBStdDev     float64      `json:"bb_std_dev"`
	SMAShort     int          `json:"sma_short"`
	SMALong      int          `json:"sma_long"`
	EMAShort     int          `json:"ema_short"`
	EMALong      int          `json:"ema_long"`
	VolumePeriod int          `json:"volume_period"`
	Weights      ScoreWeights `json:"weights"`
}

// DefaultConfig returns the standard indicator configuration.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:    DefaultRSIPeriod,
		MACDFast:     DefaultMACDFast,
		MACDSlow:     DefaultMACDSlow,
		MACDSignal:   DefaultMACDSignal,
		BBPeriod:     DefaultBBPeriod,
		BBStdDev:     DefaultBBStdDev,
		SMAShort:     DefaultSMAShort,
		SMALong:      DefaultSMALong,
		EMAShort:     DefaultEMAShort,
		EMALong:      DefaultEMALong,
		VolumePeriod: DefaultVolumePeriod,
		Weights:      DefaultScoreWeights(),
	}
}

// Snapshot is the immutable set of indicator values computed from one
// trailing price window. It is created fresh per evaluation tick and never
// mutated afterwards.
type Snapshot struct {
	RSI             float64   `json:"rsi"`
	MACD            float64   `json:"macd"`
	MACDSignal      float64   `json:"macd_signal"`
	BollingerUpper  float64   `json:"bollinger_upper"`
	BollingerMiddle float64   `json:"bollinger_middle"`
	BollingerLower  float64   `json:"bollinger_lower"`
	SMAShort        float64   `json:"sma_short"`
	SMALong         float64   `json:"sma_long"`
	EMAShort        float64   `json:"ema_short"`
	EMALong         float64   `json:"ema_long"`
	VolumeAvg       float64   `json:"volume_avg"`
	Price           float64   `json:"price"`
	Timestamp       time.Time `json:"timestamp"`
}

// BollingerPosition returns a human-readable label for where the price sits
// relative to the bands.
func (s Snapshot) BollingerPosition() string {
	switch {
	case s.Price > s.BollingerUpper:
		return "above upper band"
	case s.Price < s.BollingerLower:
		return "below lower band"
	default:
		return "inside bands"
	}
}

// Engine computes indicator snapshots and the bounded technical score.
// It is stateless apart from its configuration: every call recomputes from
// the supplied window, so it is safe to share across concurrent backtests.
type Engine struct {
	cfg  Config
	rsi  *RSI
	macd *MACD
	bb   *BollingerBands
	smaS *SMA
	smaL *SMA
	emaS *EMA
	emaL *EMA
}

// NewEngine creates an indicator engine from the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:  cfg,
		rsi:  NewRSI(cfg.RSIPeriod),
		macd: NewMACD(cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal),
		bb:   NewBollingerBands(cfg.BBPeriod, cfg.BBStdDev),
		smaS: NewSMA(cfg.SMAShort),
		smaL: NewSMA(cfg.SMALong),
		emaS: NewEMA(cfg.EMAShort),
		emaL: NewEMA(cfg.EMALong),
	}
}

// Snapshot computes all indicators from the trailing window. The window must
// hold at least one sample; short windows degrade to the documented neutral
// values per indicator rather than erroring.
func (e *Engine) Snapshot(window []types.PriceSample) Snapshot {
	if len(window) == 0 {
		return Snapshot{RSI: 50.0}
	}

	prices := types.Prices(window)
	volumes := types.Volumes(window)
	latest := window[len(window)-1]

	macdLine, signalLine := e.macd.Calculate(prices)
	upper, middle, lower := e.bb.Calculate(prices)

	volumeAvg := mean(volumes)
	if len(volumes) >= e.cfg.VolumePeriod {
		volumeAvg = mean(volumes[len(volumes)-e.cfg.VolumePeriod:])
	}

	return Snapshot{
		RSI:             e.rsi.Calculate(prices),
		MACD:            macdLine,
		MACDSignal:      signalLine,
		BollingerUpper:  upper,
		BollingerMiddle: middle,
		BollingerLower:  lower,
		SMAShort:        e.smaS.Calculate(prices),
		SMALong:         e.smaL.Calculate(prices),
		EMAShort:        e.emaS.Calculate(prices),
		EMALong:         e.emaL.Calculate(prices),
		VolumeAvg:       volumeAvg,
		Price:           latest.Price,
		Timestamp:       latest.Timestamp,
	}
}

// Score derives the bounded technical score in [-1, 1] from a snapshot as a
// weighted sum of the RSI, MACD, Bollinger, and trend sub-scores.
func (e *Engine) Score(snap Snapshot) float64 {
	w := e.cfg.Weights
	score := rsiSubScore(snap)*w.RSI +
		macdSubScore(snap)*w.MACD +
		bollingerSubScore(snap)*w.Bollinger +
		trendSubScore(snap)*w.Trend
	return clamp(score, -1, 1)
}

// rsiSubScore maps RSI extremes to full conviction and the middle range to a
// mild linear lean: overbought is bearish, oversold is bullish.
func rsiSubScore(snap Snapshot) float64 {
	switch {
	case snap.RSI > RSIOverbought:
		return -1.0
	case snap.RSI < RSIOversold:
		return 1.0
	default:
		return (snap.RSI - 50) / 50
	}
}

// macdSubScore is binary on the MACD/signal-line relation; magnitude carries
// no extra weight.
func macdSubScore(snap Snapshot) float64 {
	if snap.MACD > snap.MACDSignal {
		return 1.0
	}
	return -1.0
}

// bollingerSubScore is contrarian: price pushed outside the bands scores
// ±0.8 against the move, and the position inside the bands maps to
// [-0.5, 0.5] with price near the top scoring negative.
func bollingerSubScore(snap Snapshot) float64 {
	switch {
	case snap.Price > snap.BollingerUpper:
		return -0.8
	case snap.Price < snap.BollingerLower:
		return 0.8
	default:
		bandRange := snap.BollingerUpper - snap.BollingerLower
		if bandRange == 0 {
			return 0
		}
		position := (snap.Price - snap.BollingerMiddle) / (bandRange / 2)
		return -position * 0.5
	}
}

// trendSubScore rewards a confirmed stacked-average trend at ±0.8 and an
// unconfirmed lean against the short average at ±0.3.
func trendSubScore(snap Snapshot) float64 {
	switch {
	case snap.Price > snap.SMAShort && snap.SMAShort > snap.SMALong:
		return 0.8
	case snap.Price < snap.SMAShort && snap.SMAShort < snap.SMALong:
		return -0.8
	case snap.Price > snap.SMAShort:
		return 0.3
	case snap.Price < snap.SMAShort:
		return -0.3
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
