package sentiment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

func testWindow() Window {
	end := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	return Window{Start: end.Add(-24 * time.Hour), End: end}
}

func TestNeutralSource(t *testing.T) {
	sig, err := NewNeutralSource().FetchSentiment(context.Background(), testWindow())
	require.NoError(t, err)
	assert.Equal(t, types.SentimentSignal{}, sig)
}

func TestSurrogate_DeterministicPerSeed(t *testing.T) {
	first := NewSurrogate(42)
	second := NewSurrogate(42)

	for i := 0; i < 20; i++ {
		a, err := first.FetchSentiment(context.Background(), testWindow())
		require.NoError(t, err)
		b, err := second.FetchSentiment(context.Background(), testWindow())
		require.NoError(t, err)
		assert.Equal(t, a, b, "same seed must replay the same sequence")
	}
}

func TestSurrogate_SeedChangesSequence(t *testing.T) {
	a, err := NewSurrogate(1).FetchSentiment(context.Background(), testWindow())
	require.NoError(t, err)
	b, err := NewSurrogate(2).FetchSentiment(context.Background(), testWindow())
	require.NoError(t, err)
	assert.NotEqual(t, a.Score, b.Score)
}

func TestSurrogate_ScoreRangeAndConfidence(t *testing.T) {
	src := NewSurrogate(42)
	for i := 0; i < 500; i++ {
		sig, err := src.FetchSentiment(context.Background(), testWindow())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, sig.Score, -1.0)
		assert.LessOrEqual(t, sig.Score, 1.0)
		assert.Equal(t, surrogateConfidence, sig.Confidence)
	}
}

type staticFeed struct {
	texts []string
	err   error
}

func (f *staticFeed) Collect(_ context.Context, _ Window) ([]string, error) {
	return f.texts, f.err
}

func TestLexiconSource_ScoresKeywordBalance(t *testing.T) {
	feed := &staticFeed{texts: []string{
		"Institutional adoption fuels a bullish rally",
		"Exchange hack triggers a sharp sell-off",
		"Quarterly report published",
	}}
	src := NewLexiconSource(feed)

	sig, err := src.FetchSentiment(context.Background(), testWindow())
	require.NoError(t, err)

	// First text +1, second -1, third unscored: mean 0 over 2 scored items,
	// confidence is the scored fraction.
	assert.InDelta(t, 0.0, sig.Score, 1e-9)
	assert.InDelta(t, 2.0/3.0, sig.Confidence, 1e-9)
	assert.Equal(t, 3, sig.SampleCount)
}

func TestLexiconSource_MixedKeywordsWithinOneText(t *testing.T) {
	feed := &staticFeed{texts: []string{"rally fades into fear and correction"}}
	sig, err := NewLexiconSource(feed).FetchSentiment(context.Background(), testWindow())
	require.NoError(t, err)

	// 1 positive vs 2 negative keywords: (1-2)/(1+2).
	assert.InDelta(t, -1.0/3.0, sig.Score, 1e-9)
	assert.Equal(t, 1.0, sig.Confidence)
}

func TestLexiconSource_NoTextsIsZeroConfidence(t *testing.T) {
	sig, err := NewLexiconSource(&staticFeed{}).FetchSentiment(context.Background(), testWindow())
	require.NoError(t, err)
	assert.Equal(t, types.SentimentSignal{}, sig)
}

func TestLexiconSource_NoKeywordHitsIsZeroConfidence(t *testing.T) {
	feed := &staticFeed{texts: []string{"weather is mild today", "lunch menu posted"}}
	sig, err := NewLexiconSource(feed).FetchSentiment(context.Background(), testWindow())
	require.NoError(t, err)

	assert.Equal(t, 0.0, sig.Score)
	assert.Equal(t, 0.0, sig.Confidence)
	assert.Equal(t, 2, sig.SampleCount)
}

func TestLexiconSource_FeedErrorPropagates(t *testing.T) {
	feedErr := errors.New("feed unavailable")
	_, err := NewLexiconSource(&staticFeed{err: feedErr}).FetchSentiment(context.Background(), testWindow())
	assert.ErrorIs(t, err, feedErr)
}
