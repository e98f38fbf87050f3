package model

import "github.com/google/uuid"

// TokenManager issues and validates session tokens. A token binds the
// authenticated user to the session whose broadcaster carries their state.
type TokenManager interface {
	Generate(userID uuid.UUID, sessionID string) (string, error)
	Parse(token string) (userID uuid.UUID, sessionID string, err error)
}
