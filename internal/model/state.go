package model

import "context"

// SnapshotStore persists the last known auth state of a session so a
// reconnecting client starts out authenticated without waiting for the
// backend round trip.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) (AuthState, error)
	Save(ctx context.Context, sessionID string, state AuthState) error
	Clear(ctx context.Context, sessionID string) error
}

// AuthState is the identity and profile projection distributed by the
// broadcaster. An empty ID means signed out; all other fields must be
// empty whenever ID is empty.
type AuthState struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	Career      string `json:"career"`
	PhotoURL    string `json:"photo_url"`
}

// SignedIn reports whether the state belongs to an authenticated user.
func (s AuthState) SignedIn() bool {
	return s.ID != ""
}

// StatePatch is a partial auth state update. Only non-nil fields are
// merged; the rest of the state is kept as is.
type StatePatch struct {
	ID          *string
	Email       *string
	DisplayName *string
	Bio         *string
	Career      *string
	PhotoURL    *string
}

// Apply merges the patch into the state, provided fields winning over
// current values.
func (p StatePatch) Apply(s AuthState) AuthState {
	if p.ID != nil {
		s.ID = *p.ID
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.DisplayName != nil {
		s.DisplayName = *p.DisplayName
	}
	if p.Bio != nil {
		s.Bio = *p.Bio
	}
	if p.Career != nil {
		s.Career = *p.Career
	}
	if p.PhotoURL != nil {
		s.PhotoURL = *p.PhotoURL
	}
	return s
}

// PatchFromProfile builds the full-profile patch applied when the extended
// profile resolves after login.
func PatchFromProfile(p Profile) StatePatch {
	id := p.ID.String()
	return StatePatch{
		ID:          &id,
		Email:       &p.Email,
		DisplayName: &p.DisplayName,
		Bio:         &p.Bio,
		Career:      &p.Career,
		PhotoURL:    &p.PhotoURL,
	}
}
