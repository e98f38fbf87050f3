package handler

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"github.com/dmaslov/campuschat-server/internal/api/http/middleware"
	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/service"
)

// WS streams the two realtime feeds and the auth state over websockets.
// Each connection holds exactly one subscription; closing the socket tears
// it down.
type WS struct {
	chat   *service.Chat
	auth   *service.Auth
	logger *logger.Logger
}

func NewWS(chat *service.Chat, auth *service.Auth, logger *logger.Logger) *WS {
	return &WS{chat: chat, auth: auth, logger: logger}
}

const feedBuffer = 16

// GlobalFeed serves /ws/chat/global: every insert into the shared feed.
func (h *WS) GlobalFeed(conn *websocket.Conn) {
	events := make(chan model.GlobalMessage, feedBuffer)
	unsubscribe := h.chat.SubscribeGlobal(func(msg model.GlobalMessage) {
		select {
		case events <- msg:
		default:
		}
	})
	defer unsubscribe()

	stream(conn, events)
}

// PrivateFeed serves /ws/chat/private/:peer: inserts belonging to the
// conversation with the peer only. The conversation is resolved (and
// created on first contact) before the feed opens.
func (h *WS) PrivateFeed(conn *websocket.Conn) {
	userID, _ := conn.Locals(middleware.LocalUserID).(uuid.UUID)
	peer := conn.Params("peer")

	events := make(chan model.PrivateMessage, feedBuffer)
	unsubscribe, err := h.chat.SubscribePrivate(context.Background(), userID.String(), peer, func(msg model.PrivateMessage) {
		select {
		case events <- msg:
		default:
		}
	})
	if err != nil {
		h.logger.Warn("failed to open private feed", "peer", peer, "error", err.Error())
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}
	defer unsubscribe()

	stream(conn, events)
}

// AuthState serves /ws/auth/state: the current auth snapshot immediately on
// connect, then one frame per state change.
func (h *WS) AuthState(conn *websocket.Conn) {
	sessionID, _ := conn.Locals(middleware.LocalSessionID).(string)
	b := h.auth.Broadcaster(context.Background(), sessionID)

	events := make(chan model.AuthState, feedBuffer)
	unsubscribe := b.Subscribe(func(snap model.AuthState) {
		select {
		case events <- snap:
		default:
		}
	})
	defer unsubscribe()

	stream(conn, events)
}

// stream writes feed events until the peer goes away. The read loop exists
// only to observe the close; inbound frames are discarded.
func stream[T any](conn *websocket.Conn, events <-chan T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-events:
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
