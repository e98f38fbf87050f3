package postgres

import (
	"context"
	"fmt"

	"github.com/dmaslov/campuschat-server/internal/model"
)

var (
	_ model.GlobalMessageStore  = (*GlobalMessageRepository)(nil)
	_ model.PrivateMessageStore = (*PrivateMessageRepository)(nil)
)

type GlobalMessageRepository struct {
	db *Connection
}

func NewGlobalMessageRepository(db *Connection) *GlobalMessageRepository {
	return &GlobalMessageRepository{
		db: db,
	}
}

func (r *GlobalMessageRepository) Create(ctx context.Context, msg model.NewGlobalMessage) error {
	query := `INSERT INTO global_chat_messages (sender_id, email, content)
			  VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, msg.SenderID, msg.Email, msg.Content)
	if err != nil {
		return fmt.Errorf("failed to create global message: %w", err)
	}

	return nil
}

func (r *GlobalMessageRepository) GetAll(ctx context.Context) ([]model.GlobalMessage, error) {
	query := `SELECT id, sender_id, email, content, created_at
			  FROM global_chat_messages ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get global messages: %w", err)
	}
	defer rows.Close()

	var messages []model.GlobalMessage
	for rows.Next() {
		var msg model.GlobalMessage
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.Email, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan global message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read global messages: %w", err)
	}

	return messages, nil
}

type PrivateMessageRepository struct {
	db *Connection
}

func NewPrivateMessageRepository(db *Connection) *PrivateMessageRepository {
	return &PrivateMessageRepository{
		db: db,
	}
}

func (r *PrivateMessageRepository) Create(ctx context.Context, msg model.NewPrivateMessage) error {
	query := `INSERT INTO private_chat_messages (chat_id, sender_id, content)
			  VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, msg.ChatID, msg.SenderID, msg.Content)
	if err != nil {
		return fmt.Errorf("failed to create private message: %w", err)
	}

	return nil
}

func (r *PrivateMessageRepository) GetByChatID(ctx context.Context, chatID int64) ([]model.PrivateMessage, error) {
	query := `SELECT id, chat_id, sender_id, content, created_at
			  FROM private_chat_messages WHERE chat_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get private messages: %w", err)
	}
	defer rows.Close()

	var messages []model.PrivateMessage
	for rows.Next() {
		var msg model.PrivateMessage
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan private message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read private messages: %w", err)
	}

	return messages, nil
}
