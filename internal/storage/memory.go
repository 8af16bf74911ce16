package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-memory Repository. Insertion order is preserved.
type Memory[T Entity] struct {
	mu    sync.RWMutex
	data  map[uuid.UUID]T
	order []uuid.UUID
}

// NewMemory creates an empty in-memory repository.
func NewMemory[T Entity]() *Memory[T] {
	return &Memory[T]{data: make(map[uuid.UUID]T)}
}

// List returns every stored entity in insertion order.
func (m *Memory[T]) List(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]T, 0, len(m.order))
	for _, id := range m.order {
		items = append(items, m.data[id])
	}
	return items, nil
}

// Get returns the entity stored under id.
func (m *Memory[T]) Get(_ context.Context, id uuid.UUID) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.data[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

// Save inserts or replaces an entity.
func (m *Memory[T]) Save(_ context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := entity.EntityID()
	if _, exists := m.data[id]; !exists {
		m.order = append(m.order, id)
	}
	m.data[id] = entity
	return nil
}

// Delete removes an entity.
func (m *Memory[T]) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[id]; !exists {
		return ErrNotFound
	}
	delete(m.data, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
