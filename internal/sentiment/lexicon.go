package sentiment

import (
	"context"
	"strings"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

// TextFeed supplies the raw, already time-filtered text items for a window.
// Collection itself (Reddit, news APIs) is an external concern.
type TextFeed interface {
	Collect(ctx context.Context, window Window) ([]string, error)
}

// LexiconSource scores text items against small positive/negative keyword
// sets. It is a demo-grade stand-in for the real analyzer service and mainly
// exists so the Source boundary has a text-driven implementation.
type LexiconSource struct {
	feed     TextFeed
	positive []string
	negative []string
}

// NewLexiconSource creates a lexicon-based sentiment source over a text feed.
func NewLexiconSource(feed TextFeed) *LexiconSource {
	return &LexiconSource{
		feed: feed,
		positive: []string{
			"bullish", "rally", "adoption", "breakout", "record",
			"surge", "gain", "upgrade", "buy", "confidence",
		},
		negative: []string{
			"bearish", "crash", "hack", "ban", "restriction",
			"dump", "loss", "fear", "sell-off", "correction",
		},
	}
}

// FetchSentiment collects the window's texts and aggregates per-text keyword
// scores. No texts or no keyword hits yields a zero-confidence signal, not
// an error.
func (s *LexiconSource) FetchSentiment(ctx context.Context, window Window) (types.SentimentSignal, error) {
	texts, err := s.feed.Collect(ctx, window)
	if err != nil {
		return types.SentimentSignal{}, err
	}
	if len(texts) == 0 {
		return types.SentimentSignal{}, nil
	}

	total := 0.0
	scored := 0
	for _, text := range texts {
		score, hit := s.scoreText(text)
		if hit {
			total += score
			scored++
		}
	}
	if scored == 0 {
		return types.SentimentSignal{SampleCount: len(texts)}, nil
	}

	return types.SentimentSignal{
		Score:       total / float64(scored),
		Confidence:  float64(scored) / float64(len(texts)),
		SampleCount: len(texts),
	}, nil
}

// scoreText returns the normalized keyword balance of one text and whether
// any keyword matched at all.
func (s *LexiconSource) scoreText(text string) (float64, bool) {
	lowered := strings.ToLower(text)
	pos := 0
	neg := 0
	for _, w := range s.positive {
		if strings.Contains(lowered, w) {
			pos++
		}
	}
	for _, w := range s.negative {
		if strings.Contains(lowered, w) {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0, false
	}
	return float64(pos-neg) / float64(pos+neg), true
}
