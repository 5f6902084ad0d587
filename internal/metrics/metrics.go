// Package metrics mirrors types.MarketDataStats onto Prometheus
// collectors, grounded in the pack's own use of
// prometheus/client_golang around trading/book state. It is a
// read-through mirror: the library surface of record is still
// types.MarketDataStats (SPEC_FULL.md §6), this is purely for
// collaborator observability.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus metrics for one MatchingEngine
// registry (or a single OrderBook, for single-instrument deployments).
type Collector struct {
	messages      *prometheus.CounterVec
	newOrders     prometheus.Counter
	cancellations prometheus.Counter
	modifications prometheus.Counter
	trades        prometheus.Counter
	snapshots     prometheus.Counter
	errors        prometheus.Counter
	sequenceGaps  prometheus.Counter
	latency       prometheus.Histogram
}

// NewCollector builds a Collector and registers it against reg. Pass
// prometheus.NewRegistry() in tests to avoid polluting the default
// global registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchcore",
			Subsystem: "marketdata",
			Name:      "messages_total",
			Help:      "Market-data messages processed, by outcome.",
		}, []string{"outcome"}),
		newOrders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore", Subsystem: "marketdata", Name: "new_orders_total",
			Help: "New orders applied to the book.",
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore", Subsystem: "marketdata", Name: "cancellations_total",
			Help: "Order cancellations applied to the book.",
		}),
		modifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore", Subsystem: "marketdata", Name: "modifications_total",
			Help: "Order modifications applied to the book.",
		}),
		trades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore", Subsystem: "marketdata", Name: "trades_total",
			Help: "Trades recorded, including informational trade messages.",
		}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore", Subsystem: "marketdata", Name: "snapshots_total",
			Help: "Book snapshot rebuilds applied.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore", Subsystem: "marketdata", Name: "errors_total",
			Help: "Messages that failed to fetch or apply.",
		}),
		sequenceGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchcore", Subsystem: "marketdata", Name: "sequence_gaps_total",
			Help: "Non-increasing sequence numbers observed.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "matchcore", Subsystem: "marketdata", Name: "process_latency_seconds",
			Help:    "Per-message processing latency.",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12),
		}),
	}

	reg.MustRegister(
		c.messages, c.newOrders, c.cancellations, c.modifications,
		c.trades, c.snapshots, c.errors, c.sequenceGaps, c.latency,
	)
	return c
}

// ObserveSuccess records one successfully applied message of the given
// kind and its processing latency.
func (c *Collector) ObserveSuccess(kind string, elapsed time.Duration) {
	c.messages.WithLabelValues(kind).Inc()
	c.latency.Observe(elapsed.Seconds())

	switch kind {
	case "new_order":
		c.newOrders.Inc()
	case "cancel_order":
		c.cancellations.Inc()
	case "modify_order":
		c.modifications.Inc()
	case "trade":
		c.trades.Inc()
	case "book_snapshot":
		c.snapshots.Inc()
	}
}

// ObserveSequenceGap records a rejected, non-increasing sequence number.
func (c *Collector) ObserveSequenceGap() {
	c.messages.WithLabelValues("sequence_gap").Inc()
	c.sequenceGaps.Inc()
}

// ObserveError records a message that failed to apply for any other reason.
func (c *Collector) ObserveError() {
	c.messages.WithLabelValues("error").Inc()
	c.errors.Inc()
}
