// Package sentiment defines the boundary to the market-sentiment
// collaborator. Scoring sophistication (lexical ensembles, LLM analyzers)
// lives outside this module; everything behind the Source interface is
// interchangeable as long as it honors the contract below.
package sentiment

import (
	"context"
	"time"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

// Window is the analysis time range a sentiment reading covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// Source produces one aggregated sentiment signal per analysis window.
//
// Absence of data is not an error: implementations must return a
// zero-confidence signal instead, which tells the fusion engine to fall back
// to technical-only scoring. The error return is reserved for transport or
// infrastructure failures.
type Source interface {
	FetchSentiment(ctx context.Context, window Window) (types.SentimentSignal, error)
}

// NeutralSource always reports no usable sentiment. It is the deterministic
// fallback when no sentiment collaborator is configured.
type NeutralSource struct{}

// NewNeutralSource creates a source that always returns a zero-confidence signal.
func NewNeutralSource() *NeutralSource {
	return &NeutralSource{}
}

// FetchSentiment returns an empty signal with confidence 0.
func (s *NeutralSource) FetchSentiment(_ context.Context, _ Window) (types.SentimentSignal, error) {
	return types.SentimentSignal{}, nil
}
