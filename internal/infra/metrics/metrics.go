package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_transitions_total",
			Help: "The total number of gallery transitions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pixabay_request_duration_seconds",
			Help:    "Duration of search requests to Pixabay",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixabay_request_errors_total",
			Help: "Total number of failed search requests to Pixabay",
		},
		[]string{"reason"},
	)

	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pixabay_circuit_breaker_state",
			Help: "State of the Pixabay circuit breaker (0 closed, 1 half-open, 2 open)",
		},
	)

	TotalHits = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_search_total_hits",
			Help:    "totalHits reported for new searches",
			Buckets: []float64{0, 1, 10, 40, 100, 250, 500},
		},
	)

	ItemsRendered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_items_rendered_total",
			Help: "Total number of image cards rendered",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_active_sessions",
			Help: "Number of gallery sessions currently held",
		},
	)

	RejectedTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_rejected_triggers_total",
			Help: "Triggers rejected before reaching the controller",
		},
		[]string{"reason"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_events_published_total",
			Help: "Search events published to Kafka",
		},
		[]string{"status"},
	)
)
