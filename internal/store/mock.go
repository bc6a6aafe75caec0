package store

import (
	"context"
	"sync"

	"github.com/88maurosls/asics/internal/model"
	"github.com/88maurosls/asics/internal/service"
)

// MockStore is an in-memory implementation of service.ClassificationStore
// for testing.
type MockStore struct {
	HydrateErr   error
	CommitErr    error
	Entries      model.ClassificationSet
	CommitCalls  [][]model.ClassificationEntry
	HydrateCount int
	mu           sync.Mutex
}

// NewMockStore creates a mock store, optionally pre-seeded with entries.
func NewMockStore(seed model.ClassificationSet) *MockStore {
	entries := make(model.ClassificationSet, len(seed))
	for k, v := range seed {
		entries[k] = v
	}
	return &MockStore{Entries: entries}
}

// Hydrate implements service.ClassificationStore.
func (m *MockStore) Hydrate(_ context.Context) (model.ClassificationSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.HydrateCount++
	if m.HydrateErr != nil {
		return nil, m.HydrateErr
	}

	out := make(model.ClassificationSet, len(m.Entries))
	for k, v := range m.Entries {
		out[k] = v
	}
	return out, nil
}

// Commit implements service.ClassificationStore. Existing keys are updated
// in place, new keys added, mirroring the real store's append-or-update.
func (m *MockStore) Commit(_ context.Context, entries []model.ClassificationEntry) (*service.CommitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CommitCalls = append(m.CommitCalls, entries)
	if m.CommitErr != nil {
		return &service.CommitResult{Failed: len(entries)}, m.CommitErr
	}

	result := &service.CommitResult{}
	for _, entry := range entries {
		prior, ok := m.Entries[entry.Key]
		switch {
		case !ok:
			result.Appended++
		case prior != entry.Label:
			result.Updated++
		}
		m.Entries[entry.Key] = entry.Label
	}
	return result, nil
}

// Len returns the number of stored entries.
func (m *MockStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Entries)
}
