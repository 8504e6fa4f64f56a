// Package monitoring holds the Prometheus instrumentation for backtests and
// live analysis. Collectors are explicit values injected where needed, never
// package globals: each backtest owns its registry, so parallel parameter
// sweeps do not share mutable metric state.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the trading metrics for one simulator instance.
type Collector struct {
	registry *prometheus.Registry

	tradesTotal        *prometheus.CounterVec
	tradeValue         *prometheus.HistogramVec
	portfolioValue     *prometheus.GaugeVec
	currentPrice       *prometheus.GaugeVec
	signalConfidence   *prometheus.GaugeVec
	signalsTotal       *prometheus.CounterVec
	sentimentFallbacks prometheus.Counter
}

// NewCollector creates a collector backed by its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		tradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trader_trades_total",
				Help: "Total number of simulated trades executed",
			},
			[]string{"symbol", "side"},
		),
		tradeValue: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trader_trade_value",
				Help:    "Distribution of simulated trade cash values",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
			[]string{"symbol"},
		),
		portfolioValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trader_portfolio_value",
				Help: "Current simulated portfolio value",
			},
			[]string{"symbol"},
		),
		currentPrice: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trader_current_price",
				Help: "Latest evaluated price of the traded asset",
			},
			[]string{"symbol"},
		),
		signalConfidence: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "trader_signal_confidence",
				Help: "Confidence of the most recent fused signal",
			},
			[]string{"symbol"},
		),
		signalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trader_signals_total",
				Help: "Fused signals produced, by kind",
			},
			[]string{"symbol", "kind"},
		),
		sentimentFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "trader_sentiment_fallbacks_total",
				Help: "Evaluation ticks where sentiment was unusable and scoring fell back to technical-only",
			},
		),
	}

	c.registry.MustRegister(
		c.tradesTotal,
		c.tradeValue,
		c.portfolioValue,
		c.currentPrice,
		c.signalConfidence,
		c.signalsTotal,
		c.sentimentFallbacks,
	)
	return c
}

// Handler exposes the collector's registry over HTTP for live use.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordTrade records an executed simulated trade.
func (c *Collector) RecordTrade(symbol, side string, cashValue float64) {
	if c == nil {
		return
	}
	c.tradesTotal.WithLabelValues(symbol, side).Inc()
	c.tradeValue.WithLabelValues(symbol).Observe(cashValue)
}

// RecordTick records the per-tick gauges after an evaluation step.
func (c *Collector) RecordTick(symbol string, price, portfolioValue float64) {
	if c == nil {
		return
	}
	c.currentPrice.WithLabelValues(symbol).Set(price)
	c.portfolioValue.WithLabelValues(symbol).Set(portfolioValue)
}

// RecordSignal records a produced fused signal.
func (c *Collector) RecordSignal(symbol, kind string, confidence float64) {
	if c == nil {
		return
	}
	c.signalsTotal.WithLabelValues(symbol, kind).Inc()
	c.signalConfidence.WithLabelValues(symbol).Set(confidence)
}

// RecordSentimentFallback records a tick that scored technical-only.
func (c *Collector) RecordSentimentFallback() {
	if c == nil {
		return
	}
	c.sentimentFallbacks.Inc()
}
