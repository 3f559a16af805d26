package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aoe4scout_api_requests_total",
			Help: "The total number of requests issued to the AOE4 World API.",
		}, []string{"endpoint"}),
		APIErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aoe4scout_api_errors_total",
			Help: "The total number of AOE4 World API requests that failed.",
		}, []string{"endpoint"}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aoe4scout_api_request_duration_seconds",
			Help:    "The duration of individual AOE4 World API requests.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		CheckerAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aoe4scout_checker_attempts_total",
			Help: "The total number of live-game poll attempts that did not find a qualifying game.",
		}),
		SearchesSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aoe4scout_searches_succeeded_total",
			Help: "The total number of live-game searches that found a game and its matchups.",
		}),
		SearchesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aoe4scout_searches_failed_total",
			Help: "The total number of live-game searches that gave up at the deadline.",
		}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aoe4scout_matchup_aggregation_duration_seconds",
			Help:    "The duration of the per-opponent history aggregation.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aoe4scout_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aoe4scout_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aoe4scout_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.APIRequests,
		s.APIErrors,
		s.APIRequestDuration,
		s.CheckerAttempts,
		s.SearchesSucceeded,
		s.SearchesFailed,
		s.AggregationDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncAPIRequests(endpoint string) {
	s.APIRequests.WithLabelValues(endpoint).Inc()
}

func (s *Service) IncAPIErrors(endpoint string) {
	s.APIErrors.WithLabelValues(endpoint).Inc()
}

func (s *Service) ObserveAPIRequestDuration(endpoint string, seconds float64) {
	s.APIRequestDuration.WithLabelValues(endpoint).Observe(seconds)
}

func (s *Service) IncCheckerAttempts() {
	s.CheckerAttempts.Inc()
}

func (s *Service) IncSearchesSucceeded() {
	s.SearchesSucceeded.Inc()
}

func (s *Service) IncSearchesFailed() {
	s.SearchesFailed.Inc()
}

func (s *Service) ObserveAggregationDuration(seconds float64) {
	s.AggregationDuration.Observe(seconds)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
