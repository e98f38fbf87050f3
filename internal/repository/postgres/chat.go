package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmaslov/campuschat-server/internal/model"
)

var _ model.PrivateChatStore = (*PrivateChatRepository)(nil)

type PrivateChatRepository struct {
	db *Connection
}

func NewPrivateChatRepository(db *Connection) *PrivateChatRepository {
	return &PrivateChatRepository{
		db: db,
	}
}

// GetByPair looks up the conversation for a canonical pair. Both columns
// are matched exactly, so only the canonical orientation ever succeeds.
func (r *PrivateChatRepository) GetByPair(ctx context.Context, userID1, userID2 string) (model.PrivateChat, error) {
	var chat model.PrivateChat
	query := `SELECT id, user_id1, user_id2, created_at
			  FROM private_chats WHERE user_id1 = $1 AND user_id2 = $2`

	err := r.db.QueryRow(ctx, query, userID1, userID2).Scan(
		&chat.ID, &chat.UserID1, &chat.UserID2, &chat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PrivateChat{}, model.ErrNotFound
		}
		return model.PrivateChat{}, fmt.Errorf("failed to get private chat by pair: %w", err)
	}

	return chat, nil
}

// Create inserts the canonical pair. Two racing first contacts are safe:
// the loser of the unique constraint falls through to reading the winner's
// row.
func (r *PrivateChatRepository) Create(ctx context.Context, userID1, userID2 string) (model.PrivateChat, error) {
	var chat model.PrivateChat
	query := `INSERT INTO private_chats (user_id1, user_id2)
			  VALUES ($1, $2)
			  ON CONFLICT (user_id1, user_id2) DO NOTHING
			  RETURNING id, user_id1, user_id2, created_at`

	err := r.db.QueryRow(ctx, query, userID1, userID2).Scan(
		&chat.ID, &chat.UserID1, &chat.UserID2, &chat.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.GetByPair(ctx, userID1, userID2)
	}
	if err != nil {
		return model.PrivateChat{}, fmt.Errorf("failed to create private chat: %w", err)
	}

	return chat, nil
}
