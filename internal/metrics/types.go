package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	APIRequests         *prometheus.CounterVec
	APIErrors           *prometheus.CounterVec
	APIRequestDuration  *prometheus.HistogramVec
	CheckerAttempts     prometheus.Counter
	SearchesSucceeded   prometheus.Counter
	SearchesFailed      prometheus.Counter
	AggregationDuration prometheus.Histogram
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
