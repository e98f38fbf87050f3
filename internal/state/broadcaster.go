// Package state implements the auth state broadcaster: a single mutable
// auth state cell with an ordered subscriber registry. Every merge is
// persisted to the snapshot store and pushed to all subscribers
// synchronously, each receiving an independent copy.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
)

type subscriber struct {
	id uint64
	fn func(model.AuthState)
}

// Broadcaster owns the auth state of one client session.
type Broadcaster struct {
	sessionID string
	snapshots model.SnapshotStore
	logger    *logger.Logger

	mu     sync.Mutex
	state  model.AuthState
	subs   []subscriber
	nextID uint64
}

// NewBroadcaster creates a signed-out broadcaster for the given session.
func NewBroadcaster(sessionID string, snapshots model.SnapshotStore, logger *logger.Logger) *Broadcaster {
	return &Broadcaster{
		sessionID: sessionID,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Hydrate seeds the state from the persisted snapshot, if one exists. The
// seeded value may be stale; callers verify it against the backend in the
// background. Intended to run before the first subscriber registers.
func (b *Broadcaster) Hydrate(ctx context.Context) {
	snap, err := b.snapshots.Load(ctx, b.sessionID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			b.logger.Warn("failed to load auth snapshot", "session_id", b.sessionID, "error", err.Error())
		}
		return
	}

	b.mu.Lock()
	b.state = snap
	b.mu.Unlock()
}

// Snapshot returns an independent copy of the current state.
func (b *Broadcaster) Snapshot() model.AuthState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Subscribe registers a callback, immediately invokes it once with the
// current state and returns an idempotent unsubscribe function. Callbacks
// are notified in registration order on every change.
func (b *Broadcaster) Subscribe(fn func(model.AuthState)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	current := b.state
	b.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.unsubscribe(id)
		})
	}
}

func (b *Broadcaster) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Set merges the patch into the current state, persists the result when the
// user is signed in (clears the snapshot otherwise) and notifies every
// subscriber with its own copy. Persistence failures are logged, not
// surfaced: the in-memory state is the source of truth for this session.
func (b *Broadcaster) Set(ctx context.Context, patch model.StatePatch) {
	b.mu.Lock()
	b.state = patch.Apply(b.state)
	current := b.state
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	b.persist(ctx, current)

	for _, s := range subs {
		s.fn(current)
	}
}

// Reset transitions to signed-out: every field cleared, snapshot removed,
// subscribers notified.
func (b *Broadcaster) Reset(ctx context.Context) {
	b.mu.Lock()
	b.state = model.AuthState{}
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	b.persist(ctx, model.AuthState{})

	for _, s := range subs {
		s.fn(model.AuthState{})
	}
}

func (b *Broadcaster) persist(ctx context.Context, current model.AuthState) {
	if current.SignedIn() {
		if err := b.snapshots.Save(ctx, b.sessionID, current); err != nil {
			b.logger.Warn("failed to persist auth snapshot", "session_id", b.sessionID, "error", err.Error())
		}
		return
	}
	if err := b.snapshots.Clear(ctx, b.sessionID); err != nil {
		b.logger.Warn("failed to clear auth snapshot", "session_id", b.sessionID, "error", err.Error())
	}
}
