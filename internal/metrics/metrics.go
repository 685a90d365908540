// Package metrics exposes Prometheus instrumentation for the planner.
// The Collector owns its own registry so tests can construct as many
// collectors as they like without duplicate-registration panics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Lookups        prometheus.Counter
	LookupFailures prometheus.Counter
	LookupDuration prometheus.Histogram

	QueuesStarted   prometheus.Counter
	QueuesCancelled prometheus.Counter

	TimelineRebuilds prometheus.Counter
	SelectedTrips    prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Lookups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmapper_duration_lookups_total",
			Help: "Total travel-duration lookups issued to the directions provider.",
		}),
		LookupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmapper_duration_lookup_failures_total",
			Help: "Lookups that failed and yielded the Unknown sentinel.",
		}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tripmapper_duration_lookup_seconds",
			Help:    "Wall-clock duration of individual provider lookups.",
			Buckets: prometheus.DefBuckets,
		}),
		QueuesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmapper_resolver_queues_started_total",
			Help: "Resolver queues started (one per trip selection or relevant mutation).",
		}),
		QueuesCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmapper_resolver_queues_cancelled_total",
			Help: "Resolver queues cancelled before completing all pairs.",
		}),
		TimelineRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripmapper_timeline_rebuilds_total",
			Help: "Timeline rebuilds performed by the planner.",
		}),
		SelectedTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripmapper_selected_trips",
			Help: "1 while a trip selection is active, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		c.Lookups,
		c.LookupFailures,
		c.LookupDuration,
		c.QueuesStarted,
		c.QueuesCancelled,
		c.TimelineRebuilds,
		c.SelectedTrips,
	)

	return c
}

// Handler returns the HTTP handler serving this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
