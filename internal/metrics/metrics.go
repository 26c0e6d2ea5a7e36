// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Normalization metrics
	NormalizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_normalizations_total",
			Help: "Total number of forecast normalizations by result",
		},
		[]string{"result"},
	)

	FieldParseFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_field_parse_failures_total",
			Help: "Period fields that were present but could not be parsed",
		},
		[]string{"field"},
	)

	// Upstream metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_upstream_requests_total",
			Help: "Outbound provider requests by status",
		},
		[]string{"status"},
	)

	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forecast_upstream_request_duration_seconds",
			Help:    "Outbound provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// Probe metrics
	ProbeRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_probe_runs_total",
			Help: "Upstream probe runs by result",
		},
		[]string{"result"},
	)
)
