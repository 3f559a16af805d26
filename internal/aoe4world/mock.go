package aoe4world

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetGamesFunc           func(ctx context.Context, playerID int64, params GamesParams) ([]Game, error)
	SearchUsersFunc        func(ctx context.Context, query string, params SearchParams) ([]User, error)
	GetUserByIDFunc        func(ctx context.Context, id int64) (User, error)
	FindUserByUsernameFunc func(ctx context.Context, name string) (*User, error)

	// Call records
	GetGamesCalls []struct {
		PlayerID int64
		Params   GamesParams
	}
	SearchUsersCalls []struct {
		Query  string
		Params SearchParams
	}
	GetUserByIDCalls        []int64
	FindUserByUsernameCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetGamesCalls = nil
	m.SearchUsersCalls = nil
	m.GetUserByIDCalls = nil
	m.FindUserByUsernameCalls = nil
}

func (m *MockClient) GetGames(ctx context.Context, playerID int64, params GamesParams) ([]Game, error) {
	m.mu.Lock()
	m.GetGamesCalls = append(m.GetGamesCalls, struct {
		PlayerID int64
		Params   GamesParams
	}{playerID, params})
	fn := m.GetGamesFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, playerID, params)
	}
	return []Game{}, nil
}

func (m *MockClient) SearchUsers(ctx context.Context, query string, params SearchParams) ([]User, error) {
	m.mu.Lock()
	m.SearchUsersCalls = append(m.SearchUsersCalls, struct {
		Query  string
		Params SearchParams
	}{query, params})
	fn := m.SearchUsersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, query, params)
	}
	return []User{}, nil
}

func (m *MockClient) GetUserByID(ctx context.Context, id int64) (User, error) {
	m.mu.Lock()
	m.GetUserByIDCalls = append(m.GetUserByIDCalls, id)
	fn := m.GetUserByIDFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return User{ID: id}, nil
}

func (m *MockClient) FindUserByUsername(ctx context.Context, name string) (*User, error) {
	m.mu.Lock()
	m.FindUserByUsernameCalls = append(m.FindUserByUsernameCalls, name)
	fn := m.FindUserByUsernameFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, name)
	}
	return nil, nil
}
