package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBollingerBands_Calculate(t *testing.T) {
	bb := NewBollingerBands(20, 2.0)

	prices := make([]float64, 30)
	for i := range prices {
		if i%2 == 0 {
			prices[i] = 102
		} else {
			prices[i] = 98
		}
	}

	upper, middle, lower := bb.Calculate(prices)
	assert.InDelta(t, 100.0, middle, 0.001)
	assert.Greater(t, upper, middle)
	assert.Less(t, lower, middle)
	assert.InDelta(t, middle-lower, upper-middle, 1e-9, "bands should be symmetric around the middle")
}

func TestBollingerBands_ShortWindowSynthesizesTightBand(t *testing.T) {
	bb := NewBollingerBands(20, 2.0)

	prices := []float64{100, 101, 102}
	upper, middle, lower := bb.Calculate(prices)

	assert.Equal(t, 102.0, middle)
	assert.InDelta(t, 102.0*1.02, upper, 1e-9)
	assert.InDelta(t, 102.0*0.98, lower, 1e-9)
}

func TestBollingerBands_FlatSeriesCollapsesBands(t *testing.T) {
	bb := NewBollingerBands(20, 2.0)

	prices := make([]float64, 25)
	for i := range prices {
		prices[i] = 100
	}

	upper, middle, lower := bb.Calculate(prices)
	assert.Equal(t, 100.0, middle)
	assert.Equal(t, upper, lower, "zero volatility should collapse the bands")
}
