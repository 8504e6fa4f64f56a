package indicators

// MACD computes the Moving Average Convergence Divergence line and its
// signal line.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
}

// NewMACD creates a new MACD instance with the given fast, slow, and signal
// periods.
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fast:   NewEMA(fast),
		slow:   NewEMA(slow),
		signal: NewEMA(signal),
	}
}

// Calculate computes the MACD line and signal line over the window. With
// fewer samples than the slow period both are reported as 0 (neutral):
// a partial EMA on an undersized window produces spurious large values.
func (m *MACD) Calculate(prices []float64) (macdLine, signalLine float64) {
	if len(prices) < m.slow.Period() {
		return 0, 0
	}

	fastSeries := m.fast.Series(prices)
	slowSeries := m.slow.Series(prices)

	macdSeries := make([]float64, len(prices))
	for i := range prices {
		macdSeries[i] = fastSeries[i] - slowSeries[i]
	}

	signalSeries := m.signal.Series(macdSeries)
	return macdSeries[len(macdSeries)-1], signalSeries[len(signalSeries)-1]
}

// RequiredPeriods returns the minimum window length for a non-neutral value.
func (m *MACD) RequiredPeriods() int {
	return m.slow.Period()
}
