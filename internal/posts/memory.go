package posts

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/auteur-engineer/website/internal/blocks"
)

// MemoryRepository keeps posts in process, in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]*Post
	order []string
}

// NewMemoryRepository returns an empty in-memory post store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		posts: make(map[string]*Post),
	}
}

var _ Repository = (*MemoryRepository)(nil)

func (m *MemoryRepository) Create(_ context.Context, post *Post) (*Post, error) {
	if post.ID != "" {
		return nil, ErrIDAssigned
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := post.clone()
	stored.ID = uuid.NewString()
	m.posts[stored.ID] = stored
	m.order = append(m.order, stored.ID)
	return stored.clone(), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.posts[id]
	if !ok {
		return nil, notFound(id)
	}
	return stored.clone(), nil
}

func (m *MemoryRepository) List(_ context.Context) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Post, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.posts[id].clone())
	}
	return out, nil
}

func (m *MemoryRepository) Replace(_ context.Context, id string, post *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.posts[id]
	if !ok {
		return nil, notFound(id)
	}
	replacement := post.clone()
	stored.Title = replacement.Title
	stored.Blocks = replacement.Blocks
	return stored.clone(), nil
}

func (m *MemoryRepository) AppendBlock(_ context.Context, id string, block blocks.Block) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.posts[id]
	if !ok {
		return nil, notFound(id)
	}
	stored.Blocks = append(stored.Blocks, block)
	return stored.clone(), nil
}
