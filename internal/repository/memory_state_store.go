package repository

import (
	"context"
	"sort"
	"sync"

	"fasting/backend/internal/model"
)

// MemoryFastingStateStore keeps timer state in process memory only; a restart
// drops every running fast.
type MemoryFastingStateStore struct {
	mu     sync.RWMutex
	states map[string]model.FastingState
}

func NewMemoryFastingStateStore() *MemoryFastingStateStore {
	return &MemoryFastingStateStore{states: make(map[string]model.FastingState)}
}

func (m *MemoryFastingStateStore) Get(_ context.Context, userID string) (*model.FastingState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &state, nil
}

func (m *MemoryFastingStateStore) Save(_ context.Context, state *model.FastingState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[state.UserID] = *state
	return nil
}

func (m *MemoryFastingStateStore) ListRunning(_ context.Context) ([]model.FastingState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]model.FastingState, 0)
	for _, state := range m.states {
		if state.Status == model.StatusRunning {
			states = append(states, state)
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i].UserID < states[j].UserID })
	return states, nil
}
