// Package snapshot persists per-session auth state in Redis. It plays the
// role browser local storage plays for a web client: the "user" entry read
// at startup and rewritten on every auth state change.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmaslov/campuschat-server/internal/model"
)

const connectTimeout = 5 * time.Second

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

var _ model.SnapshotStore = (*Store)(nil)

// Store keeps one JSON-encoded AuthState per session under "user:<session>".
// Entries have no TTL; they are cleared explicitly on sign-out.
type Store struct {
	client *redis.Client
}

// NewStore creates a snapshot store over an established Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) key(sessionID string) string {
	return "user:" + sessionID
}

// Load reads the persisted snapshot, model.ErrNotFound when absent.
func (s *Store) Load(ctx context.Context, sessionID string) (model.AuthState, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.AuthState{}, model.ErrNotFound
		}
		return model.AuthState{}, fmt.Errorf("failed to load auth snapshot: %w", err)
	}

	var state model.AuthState
	if err := json.Unmarshal(data, &state); err != nil {
		return model.AuthState{}, fmt.Errorf("failed to decode auth snapshot: %w", err)
	}

	return state, nil
}

// Save overwrites the persisted snapshot.
func (s *Store) Save(ctx context.Context, sessionID string, state model.AuthState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode auth snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save auth snapshot: %w", err)
	}

	return nil
}

// Clear removes the persisted snapshot. Clearing an absent snapshot is a
// no-op.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear auth snapshot: %w", err)
	}
	return nil
}
