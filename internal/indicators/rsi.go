package indicators

import "math"

// RSI calculates the Relative Strength Index over a trailing window.
type RSI struct {
	period int
}

// NewRSI creates a new RSI instance with the given period.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Calculate computes the RSI value from the given price slice. When the
// window holds fewer than period+1 samples there are not enough deltas to
// form an average, so the neutral value 50 is returned instead of an error:
// the engine must always yield a usable score, cold start included.
func (r *RSI) Calculate(prices []float64) float64 {
	if len(prices) < r.period+1 {
		return 50.0
	}

	changes := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		changes[i-1] = prices[i] - prices[i-1]
	}

	recent := changes[len(changes)-r.period:]
	avgGain := 0.0
	avgLoss := 0.0
	for _, change := range recent {
		if change > 0 {
			avgGain += change
		} else {
			avgLoss += math.Abs(change)
		}
	}
	avgGain /= float64(r.period)
	avgLoss /= float64(r.period)

	// No movement at all carries no signal.
	if avgGain == 0 && avgLoss == 0 {
		return 50.0
	}
	// All gains, no losses: RSI saturates at its upper bound.
	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// Period returns the configured lookback period.
func (r *RSI) Period() int {
	return r.period
}
