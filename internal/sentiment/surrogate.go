package sentiment

import (
	"context"
	"math/rand"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

const (
	// surrogateStdDev matches the spread of typical aggregated social
	// sentiment so backtest behavior stays in a realistic regime.
	surrogateStdDev = 0.3

	// surrogateConfidence is the fixed confidence reported per reading;
	// above the fusion usability floor so the surrogate actually exercises
	// the sentiment weighting during backtests.
	surrogateConfidence = 0.5
)

// Surrogate generates pseudo-random sentiment readings from a fixed seed.
//
// It exists for offline backtests where no live sentiment is available.
// Substituting noise for real sentiment reduces backtest fidelity: results
// measure the technical strategy plus noise, not the fused strategy. The
// fixed seed keeps runs replayable, unlike sampling from a global RNG.
//
// A Surrogate is not safe for concurrent use; give each backtest its own.
type Surrogate struct {
	rng *rand.Rand
}

// NewSurrogate creates a seeded surrogate sentiment source.
func NewSurrogate(seed int64) *Surrogate {
	return &Surrogate{rng: rand.New(rand.NewSource(seed))}
}

// FetchSentiment returns the next pseudo-random reading, normally
// distributed around neutral and clamped to [-1, 1].
func (s *Surrogate) FetchSentiment(_ context.Context, _ Window) (types.SentimentSignal, error) {
	score := s.rng.NormFloat64() * surrogateStdDev
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return types.SentimentSignal{
		Score:      score,
		Confidence: surrogateConfidence,
	}, nil
}
