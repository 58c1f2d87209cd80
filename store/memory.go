package store

import (
	"context"
	"sync"
	"time"

	"github.com/jacentio/roster/internal/match"
)

// Memory is a volatile Store keeping records in an ordered process-local
// slice. It is safe for concurrent access; every operation takes a coarse
// lock around the whole collection. Returned records are clones, so
// callers cannot mutate stored state.
type Memory struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Create implements Store.
func (m *Memory) Create(ctx context.Context, name string, age int, scores []float64) (*Record, error) {
	r, err := NewRecord(name, age, scores)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return r.Clone(), nil
}

// Find implements Store.
func (m *Memory) Find(ctx context.Context, name string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, _, err := m.findLocked(name)
	if err != nil {
		return nil, err
	}
	return r.Clone(), nil
}

// Update implements Store.
func (m *Memory) Update(ctx context.Context, name string, age int, scores []float64) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, _, err := m.findLocked(name)
	if err != nil {
		return nil, err
	}
	if err := validateFields(age, scores); err != nil {
		return nil, err
	}

	r.Age = age
	r.Scores = append([]float64(nil), scores...)
	r.UpdatedAt = time.Now().UTC()
	r.Version++
	return r.Clone(), nil
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, i, err := m.findLocked(name)
	if err != nil {
		return err
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return nil
}

// List implements Store.
func (m *Memory) List(ctx context.Context) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r.Clone())
	}
	return out, nil
}

// Count implements Store.
func (m *Memory) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// findLocked scans in insertion order for the first case-insensitive name
// match; caller must hold the lock.
func (m *Memory) findLocked(name string) (*Record, int, error) {
	for i, r := range m.records {
		if match.Equal(r.Name, name) {
			return r, i, nil
		}
	}
	return nil, -1, ErrNotFound
}
