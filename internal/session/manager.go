// Package session keeps one auth state broadcaster per client session.
package session

import (
	"context"
	"sync"

	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/state"
)

// Manager is a get-or-create registry of broadcasters keyed by session id.
// Entries live for the process lifetime; a signed-out session keeps its
// broadcaster so late subscribers still observe the signed-out state.
type Manager struct {
	snapshots model.SnapshotStore
	logger    *logger.Logger

	mu       sync.Mutex
	sessions map[string]*state.Broadcaster
}

// NewManager creates an empty session registry.
func NewManager(snapshots model.SnapshotStore, logger *logger.Logger) *Manager {
	return &Manager{
		snapshots: snapshots,
		logger:    logger,
		sessions:  make(map[string]*state.Broadcaster),
	}
}

// Get returns the broadcaster for the session, creating and hydrating it
// from the persisted snapshot on first sight.
func (m *Manager) Get(ctx context.Context, sessionID string) *state.Broadcaster {
	m.mu.Lock()
	b, ok := m.sessions[sessionID]
	if !ok {
		b = state.NewBroadcaster(sessionID, m.snapshots, m.logger)
		m.sessions[sessionID] = b
	}
	m.mu.Unlock()

	if !ok {
		b.Hydrate(ctx)
	}
	return b
}
