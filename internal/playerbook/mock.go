package playerbook

import (
	"sync"

	"aoe4scout/internal/aoe4world"
)

// Mock is a mock implementation of the PlayerBook interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertFunc     func(user aoe4world.User) error
	GetFunc        func(id int64) (*Entry, error)
	FindByNameFunc func(name string) (*Entry, error)
	AllFunc        func() ([]Entry, error)
	TouchFunc      func(id int64) error
	RemoveFunc     func(id int64) error

	// Call records
	UpsertCalls     []aoe4world.User
	GetCalls        []int64
	FindByNameCalls []string
	TouchCalls      []int64
	RemoveCalls     []int64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Upsert(user aoe4world.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertCalls = append(m.UpsertCalls, user)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(user)
	}
	return nil
}

func (m *Mock) Get(id int64) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, id)
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, nil
}

func (m *Mock) FindByName(name string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByNameCalls = append(m.FindByNameCalls, name)
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(name)
	}
	return nil, nil
}

func (m *Mock) All() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return []Entry{}, nil
}

func (m *Mock) Touch(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TouchCalls = append(m.TouchCalls, id)
	if m.TouchFunc != nil {
		return m.TouchFunc(id)
	}
	return nil
}

func (m *Mock) Remove(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls = append(m.RemoveCalls, id)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(id)
	}
	return nil
}
