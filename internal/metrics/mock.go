package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	apiRequests          map[string]int
	apiErrors            map[string]int
	apiDurations         map[string][]float64
	checkerAttempts      int
	searchesSucceeded    int
	searchesFailed       int
	aggregationDurations []float64
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		apiRequests:  make(map[string]int),
		apiErrors:    make(map[string]int),
		apiDurations: make(map[string][]float64),
	}
}

func (m *Mock) IncAPIRequests(endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiRequests[endpoint]++
}

func (m *Mock) IncAPIErrors(endpoint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiErrors[endpoint]++
}

func (m *Mock) ObserveAPIRequestDuration(endpoint string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiDurations[endpoint] = append(m.apiDurations[endpoint], seconds)
}

func (m *Mock) IncCheckerAttempts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkerAttempts++
}

func (m *Mock) IncSearchesSucceeded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchesSucceeded++
}

func (m *Mock) IncSearchesFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchesFailed++
}

func (m *Mock) ObserveAggregationDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregationDurations = append(m.aggregationDurations, seconds)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// APIRequests returns the number of times IncAPIRequests was called for the endpoint.
func (m *Mock) APIRequests(endpoint string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiRequests[endpoint]
}

// APIErrors returns the number of times IncAPIErrors was called for the endpoint.
func (m *Mock) APIErrors(endpoint string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiErrors[endpoint]
}

// CheckerAttempts returns the number of times IncCheckerAttempts was called.
func (m *Mock) CheckerAttempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkerAttempts
}

// SearchesSucceeded returns the number of times IncSearchesSucceeded was called.
func (m *Mock) SearchesSucceeded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchesSucceeded
}

// SearchesFailed returns the number of times IncSearchesFailed was called.
func (m *Mock) SearchesFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchesFailed
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
