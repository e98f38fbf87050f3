package testutil

import (
	"context"
	"sync"

	"github.com/dmaslov/campuschat-server/internal/model"
)

// MemorySnapshots is an in-memory SnapshotStore for tests.
type MemorySnapshots struct {
	mu   sync.Mutex
	data map[string]model.AuthState
}

var _ model.SnapshotStore = (*MemorySnapshots)(nil)

func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{data: make(map[string]model.AuthState)}
}

func (s *MemorySnapshots) Load(_ context.Context, sessionID string) (model.AuthState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.data[sessionID]
	if !ok {
		return model.AuthState{}, model.ErrNotFound
	}
	return state, nil
}

func (s *MemorySnapshots) Save(_ context.Context, sessionID string, state model.AuthState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = state
	return nil
}

func (s *MemorySnapshots) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// Has reports whether a snapshot is currently persisted for the session.
func (s *MemorySnapshots) Has(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[sessionID]
	return ok
}
