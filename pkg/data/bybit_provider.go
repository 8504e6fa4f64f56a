package data

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/quantbench/sentiment-trader/pkg/types"
)

const bybitKlineLimit = 1000

// BybitProvider fetches kline data from Bybit's public market endpoints.
// It is the live-feed implementation of PriceProvider; backtests normally
// use the CSV or synthetic providers instead.
type BybitProvider struct {
	client   *bybit_api.Client
	category string
	symbol   string
	interval string
}

// NewBybitProvider creates a provider for one symbol. Category is "spot",
// "linear", or "inverse"; interval uses Bybit's notation ("60" for hourly).
// Public kline endpoints need no credentials.
func NewBybitProvider(category, symbol, interval string) *BybitProvider {
	return &BybitProvider{
		client:   bybit_api.NewBybitHttpClient("", "", bybit_api.WithBaseURL(bybit_api.MAINNET)),
		category: category,
		symbol:   symbol,
		interval: interval,
	}
}

// GetName returns the provider name.
func (p *BybitProvider) GetName() string {
	return "Bybit Provider"
}

// GetSeries fetches the klines covering [start, end], sorted ascending. The
// close price is used as the sample's evaluation price. Bybit caps a single
// request at 1000 klines; ranges beyond that are truncated to the most
// recent portion.
func (p *BybitProvider) GetSeries(ctx context.Context, start, end time.Time) ([]types.PriceSample, error) {
	params := map[string]interface{}{
		"category": p.category,
		"symbol":   p.symbol,
		"interval": p.interval,
		"limit":    bybitKlineLimit,
		"start":    start.UnixMilli(),
		"end":      end.UnixMilli(),
	}

	result, err := p.client.NewUtaBybitServiceWithParams(params).GetMarketKline(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}

	series, err := p.parseKlineResponse(result)
	if err != nil {
		return nil, fmt.Errorf("parse kline response: %w", err)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
	if err := ValidateSeries(series); err != nil {
		return nil, fmt.Errorf("bybit data violates series contract: %w", err)
	}
	return series, nil
}

func (p *BybitProvider) parseKlineResponse(response interface{}) ([]types.PriceSample, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", response)
	}
	if serverResp.RetCode != 0 {
		return nil, fmt.Errorf("API error: %s (code %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	var klineResult struct {
		Symbol   string     `json:"symbol"`
		Category string     `json:"category"`
		List     [][]string `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &klineResult); err != nil {
		return nil, fmt.Errorf("unmarshal kline list: %w", err)
	}

	series := make([]types.PriceSample, 0, len(klineResult.List))
	for _, item := range klineResult.List {
		// Bybit kline row: [startTime, open, high, low, close, volume, turnover]
		if len(item) < 6 {
			continue
		}
		ms, err := strconv.ParseInt(item[0], 10, 64)
		if err != nil {
			continue
		}
		sample := types.PriceSample{
			Timestamp: time.UnixMilli(ms),
			Open:      parseFloat(item[1]),
			High:      parseFloat(item[2]),
			Low:       parseFloat(item[3]),
			Close:     parseFloat(item[4]),
			Volume:    parseFloat(item[5]),
		}
		sample.Price = sample.Close
		series = append(series, sample)
	}
	return series, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
