package indicators

// SMA represents the Simple Moving Average technical indicator.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// Calculate computes the SMA over the trailing period. With fewer samples
// than the period it falls back to the mean of the whole window.
func (s *SMA) Calculate(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	if len(prices) < s.period {
		return mean(prices)
	}
	return mean(prices[len(prices)-s.period:])
}

// Period returns the configured lookback period.
func (s *SMA) Period() int {
	return s.period
}

// EMA represents the Exponential Moving Average technical indicator.
type EMA struct {
	period int
	alpha  float64
}

// NewEMA creates a new EMA indicator.
func NewEMA(period int) *EMA {
	return &EMA{
		period: period,
		alpha:  2.0 / float64(period+1),
	}
}

// Calculate computes the EMA over the full window, seeded with the first
// price. With fewer samples than the period it falls back to the latest
// price rather than producing a half-warmed average.
func (e *EMA) Calculate(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	if len(prices) < e.period {
		return prices[len(prices)-1]
	}
	series := e.Series(prices)
	return series[len(series)-1]
}

// Series computes the running EMA for every position in the window.
func (e *EMA) Series(prices []float64) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 {
		return out
	}
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = prices[i]*e.alpha + out[i-1]*(1-e.alpha)
	}
	return out
}

// Period returns the configured lookback period.
func (e *EMA) Period() int {
	return e.period
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
