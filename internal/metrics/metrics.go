package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// outcome is ok, rejected (caller input) or failed
	Calculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calculations_total",
		Help: "Total number of calculator runs by tool and outcome",
	}, []string{"tool", "outcome"})

	ProjectionYears = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "projection_years",
		Help:    "Requested corrosion growth projection horizon in years",
		Buckets: []float64{1, 5, 10, 20, 30, 50},
	})

	BatchItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_items_total",
		Help: "Total number of configurations evaluated in comparisons",
	}, []string{"outcome"})
)
