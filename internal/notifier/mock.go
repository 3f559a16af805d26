package notifier

import (
	"sync"

	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/matchup"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendLiveGameNotificationFunc func(user aoe4world.User, game aoe4world.Game, matchUps matchup.MatchUps, dryRun bool) (string, error)
	SendNoGameNotificationFunc   func(user aoe4world.User, attempts int, dryRun bool) (string, error)

	// Call records
	SendLiveGameNotificationCalls []struct {
		User     aoe4world.User
		Game     aoe4world.Game
		MatchUps matchup.MatchUps
		DryRun   bool
	}
	SendNoGameNotificationCalls []struct {
		User     aoe4world.User
		Attempts int
		DryRun   bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLiveGameNotificationCalls = nil
	m.SendNoGameNotificationCalls = nil
}

func (m *Mock) SendLiveGameNotification(user aoe4world.User, game aoe4world.Game, matchUps matchup.MatchUps, dryRun bool) (string, error) {
	m.mu.Lock()
	m.SendLiveGameNotificationCalls = append(m.SendLiveGameNotificationCalls, struct {
		User     aoe4world.User
		Game     aoe4world.Game
		MatchUps matchup.MatchUps
		DryRun   bool
	}{user, game, matchUps, dryRun})
	fn := m.SendLiveGameNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(user, game, matchUps, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) SendNoGameNotification(user aoe4world.User, attempts int, dryRun bool) (string, error) {
	m.mu.Lock()
	m.SendNoGameNotificationCalls = append(m.SendNoGameNotificationCalls, struct {
		User     aoe4world.User
		Attempts int
		DryRun   bool
	}{user, attempts, dryRun})
	fn := m.SendNoGameNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(user, attempts, dryRun)
	}
	return "mock-ts", nil
}
