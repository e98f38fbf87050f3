// Package mocks provides testify mocks for the store and provider
// interfaces defined in internal/model.
package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmaslov/campuschat-server/internal/model"
)

type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

type ProfileStore struct {
	mock.Mock
}

func (m *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *ProfileStore) Create(ctx context.Context, profile model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileStore) Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

type PrivateChatStore struct {
	mock.Mock
}

func (m *PrivateChatStore) GetByPair(ctx context.Context, userID1, userID2 string) (model.PrivateChat, error) {
	args := m.Called(ctx, userID1, userID2)
	return args.Get(0).(model.PrivateChat), args.Error(1)
}

func (m *PrivateChatStore) Create(ctx context.Context, userID1, userID2 string) (model.PrivateChat, error) {
	args := m.Called(ctx, userID1, userID2)
	return args.Get(0).(model.PrivateChat), args.Error(1)
}

type GlobalMessageStore struct {
	mock.Mock
}

func (m *GlobalMessageStore) Create(ctx context.Context, msg model.NewGlobalMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *GlobalMessageStore) GetAll(ctx context.Context) ([]model.GlobalMessage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.GlobalMessage), args.Error(1)
}

type PrivateMessageStore struct {
	mock.Mock
}

func (m *PrivateMessageStore) Create(ctx context.Context, msg model.NewPrivateMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *PrivateMessageStore) GetByChatID(ctx context.Context, chatID int64) ([]model.PrivateMessage, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]model.PrivateMessage), args.Error(1)
}

type SnapshotStore struct {
	mock.Mock
}

func (m *SnapshotStore) Load(ctx context.Context, sessionID string) (model.AuthState, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(model.AuthState), args.Error(1)
}

func (m *SnapshotStore) Save(ctx context.Context, sessionID string, state model.AuthState) error {
	args := m.Called(ctx, sessionID, state)
	return args.Error(0)
}

func (m *SnapshotStore) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *Storage) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Generate(userID uuid.UUID, sessionID string) (string, error) {
	args := m.Called(userID, sessionID)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Parse(token string) (uuid.UUID, string, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}
