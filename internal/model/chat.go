package model

import (
	"context"
	"time"
)

// PrivateChatStore defines persistence operations for 1:1 conversations.
// Create must be conflict-safe: when the canonical pair already exists it
// returns the existing record instead of failing or duplicating it.
type PrivateChatStore interface {
	GetByPair(ctx context.Context, userID1, userID2 string) (PrivateChat, error)
	Create(ctx context.Context, userID1, userID2 string) (PrivateChat, error)
}

// GlobalMessageStore defines persistence operations for the shared chat feed.
type GlobalMessageStore interface {
	Create(ctx context.Context, msg NewGlobalMessage) error
	GetAll(ctx context.Context) ([]GlobalMessage, error)
}

// PrivateMessageStore defines persistence operations for private chat messages.
type PrivateMessageStore interface {
	Create(ctx context.Context, msg NewPrivateMessage) error
	GetByChatID(ctx context.Context, chatID int64) ([]PrivateMessage, error)
}

// PrivateChat represents the conversation record between two users.
// UserID1 and UserID2 are always stored in canonical order (UserID1 < UserID2).
type PrivateChat struct {
	ID        int64     `json:"id"`
	UserID1   string    `json:"user_id1"`
	UserID2   string    `json:"user_id2"`
	CreatedAt time.Time `json:"created_at"`
}

// GlobalMessage is one row of the shared message feed. The json tags match
// the row_to_json payload delivered over the change feed.
type GlobalMessage struct {
	ID        int64     `json:"id"`
	SenderID  string    `json:"sender_id"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGlobalMessage carries the caller-supplied fields of a global message.
type NewGlobalMessage struct {
	SenderID string `json:"sender_id"`
	Email    string `json:"email"`
	Content  string `json:"content"`
}

// PrivateMessage is one row of a private conversation.
type PrivateMessage struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPrivateMessage carries the caller-supplied fields of a private message.
type NewPrivateMessage struct {
	ChatID   int64  `json:"chat_id"`
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
}
