package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/session"
)

// Profile manages the extended user profile and the avatar object.
type Profile struct {
	profiles model.ProfileStore
	storage  model.Storage
	sessions *session.Manager
	logger   *logger.Logger
}

func NewProfile(
	profiles model.ProfileStore,
	storage model.Storage,
	sessions *session.Manager,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		profiles: profiles,
		storage:  storage,
		sessions: sessions,
		logger:   logger,
	}
}

// GetByID returns the stored profile of a user.
func (s *Profile) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// Update writes the provided fields and merges them into the session's
// auth state. Errors propagate to the caller; the state is only touched
// after the store accepted the update.
func (s *Profile) Update(ctx context.Context, sessionID string, userID uuid.UUID, patch model.ProfilePatch) error {
	if err := s.profiles.Update(ctx, userID, patch); err != nil {
		s.logger.Error("Profile service: failed to update profile", "user_id", userID, "error", err.Error())
		return fmt.Errorf("failed to update profile: %w", err)
	}

	s.sessions.Get(ctx, sessionID).Set(ctx, model.StatePatch{
		DisplayName: patch.DisplayName,
		Bio:         patch.Bio,
		Career:      patch.Career,
		PhotoURL:    patch.PhotoURL,
	})

	return nil
}

// UpdateAvatar stores the new avatar under a fresh random key, best-effort
// deletes the previous object, persists the new key and merges it into the
// auth state. Returns the new object key.
func (s *Profile) UpdateAvatar(ctx context.Context, sessionID string, userID uuid.UUID, content io.Reader) (string, error) {
	previous := s.sessions.Get(ctx, sessionID).Snapshot().PhotoURL

	key := fmt.Sprintf("%s/%s.jpg", userID, uuid.NewString())
	if err := s.storage.Upload(ctx, key, content); err != nil {
		s.logger.Error("Profile service: failed to upload avatar", "user_id", userID, "error", err.Error())
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if previous != "" {
		if err := s.storage.Delete(ctx, previous); err != nil {
			// Cleanup is best effort, the new avatar is already in place.
			s.logger.Warn("Profile service: failed to delete previous avatar", "user_id", userID, "key", previous, "error", err.Error())
		}
	}

	if err := s.Update(ctx, sessionID, userID, model.ProfilePatch{PhotoURL: &key}); err != nil {
		return "", err
	}

	return key, nil
}

// AvatarURL resolves an avatar object key to its public address.
func (s *Profile) AvatarURL(key string) string {
	if key == "" {
		return ""
	}
	return s.storage.PublicURL(key)
}
