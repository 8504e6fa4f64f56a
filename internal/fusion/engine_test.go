package fusion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/sentiment-trader/internal/indicators"
	"github.com/quantbench/sentiment-trader/pkg/types"
)

func testSnapshot() indicators.Snapshot {
	return indicators.Snapshot{
		RSI:             55,
		MACD:            1.2,
		MACDSignal:      0.8,
		BollingerUpper:  105,
		BollingerMiddle: 100,
		BollingerLower:  95,
		Price:           100,
		Timestamp:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFuse_CombinedScoreWeighting(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	sig := engine.Fuse(0.5, types.SentimentSignal{Score: 1.0, Confidence: 0.9}, testSnapshot())

	// 1.0*0.4 + 0.5*0.6
	assert.InDelta(t, 0.7, sig.CombinedScore, 1e-9)
	assert.Equal(t, 0.5, sig.TechnicalScore)
	assert.Equal(t, 1.0, sig.SentimentScore)
}

func TestFuse_ConfidenceBlendsConvictionAndAgreement(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Full agreement: confidence = (|combined| + 1) / 2.
	sig := engine.Fuse(0.8, types.SentimentSignal{Score: 0.8, Confidence: 1.0}, testSnapshot())
	assert.InDelta(t, (0.8+1.0)/2, sig.Confidence, 1e-9)

	// Maximal disagreement keeps confidence low even with a strong signal.
	opposed := engine.Fuse(-1.0, types.SentimentSignal{Score: 1.0, Confidence: 1.0}, testSnapshot())
	agreement := 0.0
	combined := 1.0*0.4 - 1.0*0.6
	assert.InDelta(t, (mathAbs(combined)+agreement)/2, opposed.Confidence, 1e-9)
	assert.Equal(t, Hold, opposed.Kind, "contradicted signals must not clear the confidence gate")
}

func mathAbs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestFuse_UnusableSentimentFallsBackToTechnical(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	sig := engine.Fuse(0.9, types.SentimentSignal{Score: 0.8, Confidence: 0.2}, testSnapshot())

	assert.InDelta(t, 0.9, sig.CombinedScore, 1e-9, "combined score must be technical-only")
	assert.Equal(t, 0.0, sig.SentimentScore, "unusable sentiment is zeroed")
	assert.Contains(t, sig.Reasoning[1], "sentiment unusable")
}

func TestFuse_ZeroConfidenceSentimentSource(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// The source contract: no data means a zero-confidence signal, which
	// must behave as if sentiment were absent.
	sig := engine.Fuse(0.9, types.SentimentSignal{}, testSnapshot())
	assert.InDelta(t, 0.9, sig.CombinedScore, 1e-9)
	assert.Equal(t, StrongBuy, sig.Kind)
}

func TestFuse_MonotonicThresholdOrder(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Sweeping the combined score upward must pass through the kinds in
	// order without skipping or reordering. Equal sentiment and technical
	// scores give full agreement, so combined == the swept value and the
	// confidence gate clears whenever |combined| > 0.2.
	sweep := []float64{-0.9, -0.7, -0.5, -0.3, 0.0, 0.3, 0.5, 0.7, 0.9}
	var kinds []Kind
	for _, v := range sweep {
		sig := engine.Fuse(v, types.SentimentSignal{Score: v, Confidence: 1.0}, testSnapshot())
		kinds = append(kinds, sig.Kind)
	}

	for i := 1; i < len(kinds); i++ {
		assert.GreaterOrEqual(t, int(kinds[i]), int(kinds[i-1]),
			"classification must be monotonic in the combined score")
	}
	assert.Equal(t, StrongSell, kinds[0])
	assert.Contains(t, kinds, Sell)
	assert.Contains(t, kinds, Hold)
	assert.Contains(t, kinds, Buy)
	assert.Equal(t, StrongBuy, kinds[len(kinds)-1])
}

func TestFuse_SubThresholdConfidenceHolds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinConfidence = 0.99
	engine := NewEngine(cfg)

	sig := engine.Fuse(0.9, types.SentimentSignal{Score: 0.9, Confidence: 1.0}, testSnapshot())
	assert.Equal(t, Hold, sig.Kind)
	assert.Contains(t, sig.Reasoning[0], "low confidence")
}

func TestFuse_OutputsAlwaysClamped(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Out-of-range inputs must never escape the documented ranges.
	sig := engine.Fuse(5.0, types.SentimentSignal{Score: -7.0, Confidence: 1.0}, testSnapshot())
	assert.GreaterOrEqual(t, sig.CombinedScore, -1.0)
	assert.LessOrEqual(t, sig.CombinedScore, 1.0)
	assert.GreaterOrEqual(t, sig.Confidence, 0.0)
	assert.LessOrEqual(t, sig.Confidence, 1.0)
}

func TestFuse_ReasoningTrace(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	snap := testSnapshot()
	snap.RSI = 75

	sig := engine.Fuse(0.7, types.SentimentSignal{Score: 0.8, Confidence: 0.9}, snap)

	require.NotEmpty(t, sig.Reasoning)
	assert.Contains(t, sig.Reasoning[0], "combined score strongly positive")
	assert.Contains(t, sig.Reasoning, "positive sentiment: 0.800")
	assert.Contains(t, sig.Reasoning, "positive technical indicators: 0.700")
	assert.Contains(t, sig.Reasoning, "RSI overbought: 75.0")
	assert.Contains(t, sig.Reasoning, "MACD above signal line")
	assert.Contains(t, sig.Reasoning[len(sig.Reasoning)-1], "inside bands")
}

func TestFuse_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	snap := testSnapshot()
	sent := types.SentimentSignal{Score: 0.4, Confidence: 0.8}

	first := engine.Fuse(0.3, sent, snap)
	second := engine.Fuse(0.3, sent, snap)
	assert.Equal(t, first, second)
}

func TestSignal_JSONRoundTrip(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	sig := engine.Fuse(0.7, types.SentimentSignal{Score: 0.8, Confidence: 0.9}, testSnapshot())

	raw, err := json.Marshal(sig)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"signal_kind":"STRONG_BUY"`)
	assert.Contains(t, string(raw), `"reference_price":100`)

	var decoded Signal
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, sig.Kind, decoded.Kind)
	assert.Equal(t, sig.CombinedScore, decoded.CombinedScore)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := Config{SentimentWeight: 0.5, TechnicalWeight: 0.6, MinConfidence: 0.6}
	assert.Error(t, bad.Validate())

	bad = Config{SentimentWeight: 0.4, TechnicalWeight: 0.6, MinConfidence: 1.5}
	assert.Error(t, bad.Validate())
}
