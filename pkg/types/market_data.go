package types

import "time"

// PriceSample is a single observation of the traded asset. Price is the
// evaluation price for the sample; the OHLC fields are optional and may be
// zero when the upstream source only reports a spot price.
type PriceSample struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Open      float64   `json:"open,omitempty"`
	High      float64   `json:"high,omitempty"`
	Low       float64   `json:"low,omitempty"`
	Close     float64   `json:"close,omitempty"`
}

// SentimentSignal is the aggregated market-sentiment input for one analysis
// window. Score is in [-1, 1], Confidence in [0, 1]. A zero-confidence signal
// means "no usable sentiment data" and is a valid, non-error value.
type SentimentSignal struct {
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
	SampleCount int     `json:"sample_count"`
}

// Prices extracts the evaluation prices from a sample window.
func Prices(samples []PriceSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Price
	}
	return out
}

// Volumes extracts the volumes from a sample window.
func Volumes(samples []PriceSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Volume
	}
	return out
}
