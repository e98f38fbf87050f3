package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmaslov/campuschat-server/internal/auth"
	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/session"
	"github.com/dmaslov/campuschat-server/internal/state"
)

// Session is the result of a successful registration or login.
type Session struct {
	Token     string
	SessionID string
	State     model.AuthState
}

// Auth implements the auth provider boundary: registration, login, logout
// and current-user, driving the per-session auth state broadcaster.
type Auth struct {
	users     model.UserStore
	profiles  model.ProfileStore
	sessions  *session.Manager
	passwords *auth.PasswordService
	tokens    model.TokenManager
	logger    *logger.Logger
}

func NewAuth(
	users model.UserStore,
	profiles model.ProfileStore,
	sessions *session.Manager,
	passwords *auth.PasswordService,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:     users,
		profiles:  profiles,
		sessions:  sessions,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates the auth user and their profile row, then transitions
// the new session to signed-in with the partial {id, email} state.
func (a *Auth) Register(ctx context.Context, email, password string) (Session, error) {
	_, err := a.users.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: email already registered", "email", email)
		return Session{}, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email", "email", email, "error", err.Error())
		return Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.passwords.Hash(password)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create user", "email", email, "error", err.Error())
		return Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	if err := a.profiles.Create(ctx, model.Profile{ID: user.ID, Email: user.Email}); err != nil {
		a.logger.Error("Auth service: failed to create profile", "user_id", user.ID, "error", err.Error())
		return Session{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return a.openSession(ctx, user)
}

// Login verifies the credentials, transitions the session to the partial
// signed-in state and kicks off the extended profile load in the
// background. The background merge races later edits; last writer wins.
func (a *Auth) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email", "email", email, "error", err.Error())
		return Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			return Session{}, model.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("failed to verify password: %w", err)
	}

	sess, err := a.openSession(ctx, user)
	if err != nil {
		return Session{}, err
	}

	go a.loadFullProfile(context.WithoutCancel(ctx), sess.SessionID, user.ID)

	return sess, nil
}

// Logout resets the session to signed-out and clears its snapshot.
func (a *Auth) Logout(ctx context.Context, sessionID string) {
	a.sessions.Get(ctx, sessionID).Reset(ctx)
}

// CurrentUser returns the auth state snapshot of the session.
func (a *Auth) CurrentUser(ctx context.Context, sessionID string) model.AuthState {
	return a.sessions.Get(ctx, sessionID).Snapshot()
}

// Broadcaster exposes the session broadcaster for subscribers such as the
// auth state websocket.
func (a *Auth) Broadcaster(ctx context.Context, sessionID string) *state.Broadcaster {
	return a.sessions.Get(ctx, sessionID)
}

func (a *Auth) openSession(ctx context.Context, user model.User) (Session, error) {
	sessionID := uuid.NewString()
	tokenString, err := a.tokens.Generate(user.ID, sessionID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	id := user.ID.String()
	email := user.Email
	b := a.sessions.Get(ctx, sessionID)
	b.Set(ctx, model.StatePatch{ID: &id, Email: &email})

	return Session{
		Token:     tokenString,
		SessionID: sessionID,
		State:     b.Snapshot(),
	}, nil
}

func (a *Auth) loadFullProfile(ctx context.Context, sessionID string, userID uuid.UUID) {
	profile, err := a.profiles.GetByID(ctx, userID)
	if err != nil {
		a.logger.Warn("Auth service: failed to load full profile", "user_id", userID, "error", err.Error())
		return
	}

	a.sessions.Get(ctx, sessionID).Set(ctx, model.PatchFromProfile(profile))
}
