package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/realtime"
)

// Chat implements the global feed, private conversations and the private
// chat resolution cache. The cache maps the canonical pair key to its
// conversation record and never evicts; it lives as long as the process.
type Chat struct {
	chats    model.PrivateChatStore
	globals  model.GlobalMessageStore
	privates model.PrivateMessageStore
	hub      *realtime.Hub
	logger   *logger.Logger

	mu    sync.Mutex
	cache map[string]model.PrivateChat
}

func NewChat(
	chats model.PrivateChatStore,
	globals model.GlobalMessageStore,
	privates model.PrivateMessageStore,
	hub *realtime.Hub,
	logger *logger.Logger,
) *Chat {
	return &Chat{
		chats:    chats,
		globals:  globals,
		privates: privates,
		hub:      hub,
		logger:   logger,
		cache:    make(map[string]model.PrivateChat),
	}
}

// ResolvePrivateChat returns the conversation record for the two users,
// creating it on first contact. Argument order never matters: the pair is
// normalized before the cache and the store are consulted.
func (s *Chat) ResolvePrivateChat(ctx context.Context, senderID, receiverID string) (model.PrivateChat, error) {
	if senderID == receiverID {
		return model.PrivateChat{}, model.ErrSelfChat
	}

	key := model.PairKey(senderID, receiverID)

	s.mu.Lock()
	chat, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return chat, nil
	}

	userID1, userID2 := model.OrderPair(senderID, receiverID)

	chat, err := s.chats.GetByPair(ctx, userID1, userID2)
	if errors.Is(err, model.ErrNotFound) {
		chat, err = s.chats.Create(ctx, userID1, userID2)
	}
	if err != nil {
		s.logger.Error("Chat service: failed to resolve private chat", "pair", key, "error", err.Error())
		return model.PrivateChat{}, fmt.Errorf("failed to resolve private chat: %w", err)
	}

	s.mu.Lock()
	s.cache[key] = chat
	s.mu.Unlock()

	return chat, nil
}

// SendGlobalMessage inserts a message into the shared feed.
func (s *Chat) SendGlobalMessage(ctx context.Context, msg model.NewGlobalMessage) error {
	if err := s.globals.Create(ctx, msg); err != nil {
		s.logger.Error("Chat service: failed to send global message", "sender_id", msg.SenderID, "error", err.Error())
		return fmt.Errorf("failed to send global message: %w", err)
	}
	return nil
}

// FetchGlobalMessages returns the shared feed history.
func (s *Chat) FetchGlobalMessages(ctx context.Context) ([]model.GlobalMessage, error) {
	messages, err := s.globals.GetAll(ctx)
	if err != nil {
		s.logger.Error("Chat service: failed to fetch global messages", "error", err.Error())
		return nil, fmt.Errorf("failed to fetch global messages: %w", err)
	}
	return messages, nil
}

// SendPrivateMessage resolves the conversation and inserts the message
// with its chat id.
func (s *Chat) SendPrivateMessage(ctx context.Context, senderID, receiverID, content string) error {
	chat, err := s.ResolvePrivateChat(ctx, senderID, receiverID)
	if err != nil {
		return err
	}

	err = s.privates.Create(ctx, model.NewPrivateMessage{
		ChatID:   chat.ID,
		SenderID: senderID,
		Content:  content,
	})
	if err != nil {
		s.logger.Error("Chat service: failed to send private message", "chat_id", chat.ID, "error", err.Error())
		return fmt.Errorf("failed to send private message: %w", err)
	}

	return nil
}

// FetchPrivateMessages returns the history of the conversation between the
// two users, resolving (and possibly creating) the conversation first.
func (s *Chat) FetchPrivateMessages(ctx context.Context, senderID, receiverID string) ([]model.PrivateMessage, error) {
	chat, err := s.ResolvePrivateChat(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	messages, err := s.privates.GetByChatID(ctx, chat.ID)
	if err != nil {
		s.logger.Error("Chat service: failed to fetch private messages", "chat_id", chat.ID, "error", err.Error())
		return nil, fmt.Errorf("failed to fetch private messages: %w", err)
	}

	return messages, nil
}

// SubscribeGlobal registers a callback for new shared feed messages.
func (s *Chat) SubscribeGlobal(fn func(model.GlobalMessage)) func() {
	return s.hub.SubscribeGlobal(fn)
}

// SubscribePrivate resolves the conversation and registers a callback for
// its new messages.
func (s *Chat) SubscribePrivate(ctx context.Context, senderID, receiverID string, fn func(model.PrivateMessage)) (func(), error) {
	chat, err := s.ResolvePrivateChat(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	return s.hub.SubscribePrivate(chat.ID, fn), nil
}
