package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncAPIRequests(endpoint string)
	IncAPIErrors(endpoint string)
	ObserveAPIRequestDuration(endpoint string, seconds float64)
	IncCheckerAttempts()
	IncSearchesSucceeded()
	IncSearchesFailed()
	ObserveAggregationDuration(seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(seconds float64)
}
