package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

func testRange() (time.Time, time.Time) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return start, start.Add(72 * time.Hour)
}

func TestSyntheticProvider_Deterministic(t *testing.T) {
	provider := NewSyntheticProvider(42)
	start, end := testRange()

	first, err := provider.GetSeries(context.Background(), start, end)
	require.NoError(t, err)
	second, err := provider.GetSeries(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed and range must replay the same series")
}

func TestSyntheticProvider_SeedChangesSeries(t *testing.T) {
	start, end := testRange()

	a, err := NewSyntheticProvider(1).GetSeries(context.Background(), start, end)
	require.NoError(t, err)
	b, err := NewSyntheticProvider(2).GetSeries(context.Background(), start, end)
	require.NoError(t, err)

	assert.NotEqual(t, a[0].Price, b[0].Price)
}

func TestSyntheticProvider_SeriesContract(t *testing.T) {
	provider := NewSyntheticProvider(42)
	start, end := testRange()

	series, err := provider.GetSeries(context.Background(), start, end)
	require.NoError(t, err)

	assert.Len(t, series, 72, "one sample per hour across the range")
	assert.NoError(t, ValidateSeries(series))
	for _, s := range series {
		assert.Greater(t, s.Price, 0.0)
		assert.GreaterOrEqual(t, s.Volume, minVolume)
		assert.GreaterOrEqual(t, s.High, s.Price)
		assert.LessOrEqual(t, s.Low, s.Price)
	}
	assert.Equal(t, start, series[0].Timestamp)
}

func TestSyntheticProvider_CustomParams(t *testing.T) {
	provider := NewSyntheticProviderWithParams(7, 100, 0.001, 15*time.Minute)
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	series, err := provider.GetSeries(context.Background(), start, start.Add(time.Hour))
	require.NoError(t, err)

	require.Len(t, series, 4)
	assert.Equal(t, 15*time.Minute, series[1].Timestamp.Sub(series[0].Timestamp))
	// With 0.1% volatility the walk stays close to its starting price.
	for _, s := range series {
		assert.InDelta(t, 100.0, s.Price, 5.0)
	}
}

func TestValidateSeries(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	ordered := []types.PriceSample{
		{Timestamp: start, Price: 100},
		{Timestamp: start.Add(time.Hour), Price: 101},
	}
	assert.NoError(t, ValidateSeries(ordered))
	assert.NoError(t, ValidateSeries(nil))

	duplicate := []types.PriceSample{
		{Timestamp: start, Price: 100},
		{Timestamp: start, Price: 101},
	}
	assert.Error(t, ValidateSeries(duplicate))

	reversed := []types.PriceSample{
		{Timestamp: start.Add(time.Hour), Price: 100},
		{Timestamp: start, Price: 101},
	}
	assert.Error(t, ValidateSeries(reversed))
}

func TestFilterRange(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	series := make([]types.PriceSample, 10)
	for i := range series {
		series[i] = types.PriceSample{Timestamp: start.Add(time.Duration(i) * time.Hour), Price: 100}
	}

	mid := FilterRange(series, start.Add(2*time.Hour), start.Add(5*time.Hour))
	require.Len(t, mid, 4, "range bounds are inclusive")
	assert.Equal(t, start.Add(2*time.Hour), mid[0].Timestamp)
	assert.Equal(t, start.Add(5*time.Hour), mid[len(mid)-1].Timestamp)

	assert.Len(t, FilterRange(series, time.Time{}, time.Time{}), 10, "zero bounds are unbounded")
	assert.Len(t, FilterRange(series, time.Time{}, start.Add(3*time.Hour)), 4)
	assert.Empty(t, FilterRange(series, start.Add(100*time.Hour), time.Time{}))
}
