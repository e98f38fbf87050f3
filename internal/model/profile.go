package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProfileStore defines persistence operations for user profiles.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	Create(ctx context.Context, profile Profile) error
	Update(ctx context.Context, id uuid.UUID, patch ProfilePatch) error
}

// Profile represents the extended public profile of a user.
// Empty string fields mean the user never filled them in.
type Profile struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Bio         string
	Career      string
	PhotoURL    string
	CreatedAt   time.Time
}

// ProfilePatch is an explicit partial update: a nil field keeps the stored
// value, a non-nil field overwrites it (including overwriting with "").
type ProfilePatch struct {
	DisplayName *string
	Bio         *string
	Career      *string
	PhotoURL    *string
}

// IsZero reports whether the patch carries no fields at all.
func (p ProfilePatch) IsZero() bool {
	return p.DisplayName == nil && p.Bio == nil && p.Career == nil && p.PhotoURL == nil
}
