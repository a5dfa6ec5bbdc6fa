// Package metrics defines the Prometheus instrumentation for the forwarding
// pipeline. Counters are observability only and never drive control flow.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the collectors updated by the ingest loop and the sender.
type Metrics struct {
	// Received counts payloads delivered by the bus, valid or not.
	Received prometheus.Counter

	// DroppedInvalid counts payloads discarded for not being valid UTF-8.
	DroppedInvalid prometheus.Counter

	// Filtered counts payloads skipped by the identity filter.
	Filtered prometheus.Counter

	// Flushes counts flush attempts by outcome ("ok" or "error").
	Flushes *prometheus.CounterVec

	// RowsFlushed counts rows handed to the sink across all attempts.
	RowsFlushed prometheus.Counter

	// FlushDuration observes the wall time of each flush attempt.
	FlushDuration prometheus.Histogram
}

// New creates the pipeline collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Received: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "walletsink_messages_received_total",
			Help: "Payloads delivered by the message bus.",
		}),
		DroppedInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "walletsink_messages_dropped_invalid_total",
			Help: "Payloads dropped for invalid UTF-8.",
		}),
		Filtered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "walletsink_messages_filtered_total",
			Help: "Payloads skipped by the address filter.",
		}),
		Flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "walletsink_flushes_total",
			Help: "Flush attempts by outcome.",
		}, []string{"outcome"}),
		RowsFlushed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "walletsink_rows_flushed_total",
			Help: "Rows handed to the sink across all flush attempts.",
		}),
		FlushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletsink_flush_duration_seconds",
			Help:    "Wall time of flush attempts.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.Received,
		m.DroppedInvalid,
		m.Filtered,
		m.Flushes,
		m.RowsFlushed,
		m.FlushDuration,
	)
	return m
}

// NewUnregistered creates collectors bound to a throwaway registry.
// Used by tests and by embedders that disable metrics.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
