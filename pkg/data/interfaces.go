// Package data supplies price series to the backtest engine from
// interchangeable sources: synthetic generation, CSV replay, or a live
// exchange.
package data

import (
	"context"
	"fmt"
	"time"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

// PriceProvider produces the time-ordered price series for one range.
//
// Returned series must be strictly time-ordered with no duplicate
// timestamps, finite, and restartable: calling GetSeries twice with the same
// parameters (and, for synthetic providers, the same seed) must yield the
// same series so backtests replay deterministically.
type PriceProvider interface {
	GetSeries(ctx context.Context, start, end time.Time) ([]types.PriceSample, error)
	GetName() string
}

// ValidateSeries checks the provider contract on a series.
func ValidateSeries(series []types.PriceSample) error {
	for i := 1; i < len(series); i++ {
		if !series[i].Timestamp.After(series[i-1].Timestamp) {
			return fmt.Errorf("series not strictly time-ordered at index %d (%s after %s)",
				i, series[i].Timestamp, series[i-1].Timestamp)
		}
	}
	return nil
}

// FilterRange returns the samples within [start, end], preserving order.
// A zero start or end leaves that side unbounded.
func FilterRange(series []types.PriceSample, start, end time.Time) []types.PriceSample {
	out := make([]types.PriceSample, 0, len(series))
	for _, s := range series {
		if !start.IsZero() && s.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && s.Timestamp.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}
