package counters

import (
	"context"
	"sync"
)

// Repository persists counters. Add is applied by the store in one step.
type Repository interface {
	Get(ctx context.Context, id string) (*Counter, error)
	Ensure(ctx context.Context, id string) (*Counter, error)
	Add(ctx context.Context, id string, delta int64) (*Counter, error)
}

// MemoryRepository keeps counters in a map guarded by a mutex.
type MemoryRepository struct {
	mu     sync.Mutex
	values map[string]int64
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: map[string]int64{}}
}

var _ Repository = (*MemoryRepository)(nil)

func (m *MemoryRepository) Get(_ context.Context, id string) (*Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[id]
	if !ok {
		return nil, &NotFoundError{Key: id}
	}
	return &Counter{ID: id, Value: value}, nil
}

func (m *MemoryRepository) Ensure(_ context.Context, id string) (*Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[id]
	if !ok {
		m.values[id] = 0
	}
	return &Counter{ID: id, Value: value}, nil
}

func (m *MemoryRepository) Add(_ context.Context, id string, delta int64) (*Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[id]
	if !ok {
		return nil, &NotFoundError{Key: id}
	}
	value += delta
	m.values[id] = value
	return &Counter{ID: id, Value: value}, nil
}
