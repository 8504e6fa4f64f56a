package backtest

import (
	"math"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

// annualizationFactor converts per-tick Sharpe to an annualized figure using
// the 252-trading-day convention.
var annualizationFactor = math.Sqrt(252)

// benchmarkReturn is the buy-and-hold return over the series, using only the
// first and last prices.
func benchmarkReturn(series []types.PriceSample) float64 {
	if len(series) < 2 {
		return 0
	}
	first := series[0].Price
	last := series[len(series)-1].Price
	if first == 0 {
		return 0
	}
	return (last - first) / first
}

// winRate matches each SELL against the most recent prior BUY and reports
// the fraction of winning sells. A run with no sells reports 0, not NaN.
func winRate(trades []Trade) float64 {
	wins := 0
	sells := 0
	for i, trade := range trades {
		if trade.Side != SideSell {
			continue
		}
		sells++
		for j := i - 1; j >= 0; j-- {
			if trades[j].Side == SideBuy {
				if trade.Price > trades[j].Price {
					wins++
				}
				break
			}
		}
	}
	if sells == 0 {
		return 0
	}
	return float64(wins) / float64(sells)
}

// maxDrawdown is the largest peak-to-trough decline of the value series,
// as a fraction of the running peak.
func maxDrawdown(values []ValuePoint) float64 {
	if len(values) == 0 {
		return 0
	}
	peak := values[0].Value
	maxDD := 0.0
	for _, point := range values {
		if point.Value > peak {
			peak = point.Value
		}
		if peak == 0 {
			continue
		}
		if dd := (peak - point.Value) / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// sharpeRatio is the mean per-tick return over its standard deviation,
// annualized. A flat series has zero deviation and reports 0 rather than
// dividing by zero.
func sharpeRatio(values []ValuePoint) float64 {
	if len(values) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1].Value
		if prev == 0 {
			continue
		}
		returns = append(returns, (values[i].Value-prev)/prev)
	}
	if len(returns) == 0 {
		return 0
	}

	avg := 0.0
	for _, r := range returns {
		avg += r
	}
	avg /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - avg) * (r - avg)
	}
	variance /= float64(len(returns))
	stdDev := math.Sqrt(variance)

	if stdDev == 0 {
		return 0
	}
	return avg / stdDev * annualizationFactor
}
