// Package fusion combines a technical-analysis score with a market-sentiment
// score into a single discrete trading signal with a confidence value and a
// human-readable reasoning trace.
package fusion

import (
	"fmt"

	"github.com/quantbench/sentiment-trader/internal/indicators"
	"github.com/quantbench/sentiment-trader/pkg/types"
)

// Default fusion policy values.
const (
	DefaultSentimentWeight = 0.4
	DefaultTechnicalWeight = 0.6
	DefaultMinConfidence   = 0.6

	// MinUsableSentimentConfidence is the floor below which a sentiment
	// reading is treated as absent and the combined score degrades to
	// technical-only.
	MinUsableSentimentConfidence = 0.3

	// Classification thresholds on the combined score.
	strongThreshold = 0.6
	weakThreshold   = 0.2

	// Sub-scores past this magnitude earn a directional reasoning note.
	notableScore = 0.3
)

// Config holds the fusion weights and thresholds. SentimentWeight and
// TechnicalWeight must sum to 1.
type Config struct {
	SentimentWeight float64 `json:"sentiment_weight"`
	TechnicalWeight float64 `json:"technical_weight"`
	MinConfidence   float64 `json:"min_confidence"`
}

// DefaultConfig returns the standard 40/60 sentiment/technical weighting
// with a 0.6 confidence gate.
func DefaultConfig() Config {
	return Config{
		SentimentWeight: DefaultSentimentWeight,
		TechnicalWeight: DefaultTechnicalWeight,
		MinConfidence:   DefaultMinConfidence,
	}
}

// Validate checks the config invariants.
func (c Config) Validate() error {
	if sum := c.SentimentWeight + c.TechnicalWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("sentiment and technical weights must sum to 1, got %.3f", sum)
	}
	if c.SentimentWeight < 0 || c.TechnicalWeight < 0 {
		return fmt.Errorf("fusion weights must be non-negative")
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be in [0,1], got %.3f", c.MinConfidence)
	}
	return nil
}

// Engine fuses the two scores into a Signal. It holds no mutable state:
// Fuse is a pure function of its inputs and is safe to call concurrently.
type Engine struct {
	cfg Config
}

// NewEngine creates a fusion engine with the given policy.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Fuse combines the technical score with a sentiment reading against the
// indicator snapshot the technical score was derived from.
//
// Sentiment below the usability floor is treated as absent: its score is
// zeroed and the combined score falls back to the technical score alone.
// Confidence blends conviction (combined magnitude) with cross-signal
// agreement, so a strong score contradicted by the other signal stays below
// the gate.
func (e *Engine) Fuse(technicalScore float64, sent types.SentimentSignal, snap indicators.Snapshot) Signal {
	technicalScore = clamp(technicalScore, -1, 1)

	sentimentScore := clamp(sent.Score, -1, 1)
	sentimentUsable := sent.Confidence >= MinUsableSentimentConfidence
	if !sentimentUsable {
		sentimentScore = 0
	}

	var combined float64
	if sentimentUsable {
		combined = sentimentScore*e.cfg.SentimentWeight + technicalScore*e.cfg.TechnicalWeight
	} else {
		combined = technicalScore
	}
	combined = clamp(combined, -1, 1)

	agreement := 1.0 - abs(sentimentScore-technicalScore)/2.0
	confidence := clamp((abs(combined)+agreement)/2.0, 0, 1)

	kind := classify(combined, confidence, e.cfg.MinConfidence)

	return Signal{
		Kind:           kind,
		Confidence:     confidence,
		SentimentScore: sentimentScore,
		TechnicalScore: technicalScore,
		CombinedScore:  combined,
		Reasoning:      e.buildReasoning(kind, combined, confidence, sentimentScore, technicalScore, sentimentUsable, sent.Confidence, snap),
		Timestamp:      snap.Timestamp,
		ReferencePrice: snap.Price,
	}
}

// classify maps the combined score onto the five signal kinds, gated by the
// confidence threshold. Sub-threshold confidence always resolves to Hold.
func classify(combined, confidence, minConfidence float64) Kind {
	if confidence <= minConfidence {
		return Hold
	}
	switch {
	case combined > strongThreshold:
		return StrongBuy
	case combined > weakThreshold:
		return Buy
	case combined < -strongThreshold:
		return StrongSell
	case combined < -weakThreshold:
		return Sell
	default:
		return Hold
	}
}

// buildReasoning assembles the ordered trace: which threshold fired, then
// directional notes for each notable sub-signal, then specific indicator
// callouts. The trace is part of the signal contract, not cosmetics.
func (e *Engine) buildReasoning(kind Kind, combined, confidence, sentimentScore, technicalScore float64, sentimentUsable bool, sentimentConfidence float64, snap indicators.Snapshot) []string {
	reasoning := make([]string, 0, 8)

	switch kind {
	case StrongBuy:
		reasoning = append(reasoning, fmt.Sprintf("combined score strongly positive: %.3f", combined))
	case Buy:
		reasoning = append(reasoning, fmt.Sprintf("combined score positive: %.3f", combined))
	case StrongSell:
		reasoning = append(reasoning, fmt.Sprintf("combined score strongly negative: %.3f", combined))
	case Sell:
		reasoning = append(reasoning, fmt.Sprintf("combined score negative: %.3f", combined))
	default:
		reasoning = append(reasoning, fmt.Sprintf("neutral score or low confidence: %.3f (confidence: %.3f)", combined, confidence))
	}

	if !sentimentUsable {
		reasoning = append(reasoning, fmt.Sprintf("sentiment unusable (confidence %.2f), technical-only scoring", sentimentConfidence))
	} else if sentimentScore > notableScore {
		reasoning = append(reasoning, fmt.Sprintf("positive sentiment: %.3f", sentimentScore))
	} else if sentimentScore < -notableScore {
		reasoning = append(reasoning, fmt.Sprintf("negative sentiment: %.3f", sentimentScore))
	}

	if technicalScore > notableScore {
		reasoning = append(reasoning, fmt.Sprintf("positive technical indicators: %.3f", technicalScore))
	} else if technicalScore < -notableScore {
		reasoning = append(reasoning, fmt.Sprintf("negative technical indicators: %.3f", technicalScore))
	}

	if snap.RSI > indicators.RSIOverbought {
		reasoning = append(reasoning, fmt.Sprintf("RSI overbought: %.1f", snap.RSI))
	} else if snap.RSI < indicators.RSIOversold {
		reasoning = append(reasoning, fmt.Sprintf("RSI oversold: %.1f", snap.RSI))
	}

	if snap.MACD > snap.MACDSignal {
		reasoning = append(reasoning, "MACD above signal line")
	} else {
		reasoning = append(reasoning, "MACD below signal line")
	}

	reasoning = append(reasoning, fmt.Sprintf("price: $%.2f (%s)", snap.Price, snap.BollingerPosition()))

	return reasoning
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

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
