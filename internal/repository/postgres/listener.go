package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/realtime"
)

const (
	globalChannel  = "global_chat_messages"
	privateChannel = "private_chat_messages"
)

// Listener consumes the insert notifications emitted by the database
// triggers and forwards each row to the realtime hub. It holds one
// dedicated connection; reconnection is left to the supervisor that
// restarts Run.
type Listener struct {
	db     *Connection
	hub    *realtime.Hub
	logger *logger.Logger
}

func NewListener(db *Connection, hub *realtime.Hub, logger *logger.Logger) *Listener {
	return &Listener{
		db:     db,
		hub:    hub,
		logger: logger,
	}
}

// Run blocks consuming notifications until the context is cancelled or the
// connection fails.
func (l *Listener) Run(ctx context.Context) error {
	conn, err := l.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listen connection: %w", err)
	}
	defer conn.Release()

	for _, channel := range []string{globalChannel, privateChannel} {
		if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
			return fmt.Errorf("failed to listen on %s: %w", channel, err)
		}
	}

	l.logger.Info("change feed listener started", "channels", []string{globalChannel, privateChannel})

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to wait for notification: %w", err)
		}

		l.dispatch(notification.Channel, []byte(notification.Payload))
	}
}

func (l *Listener) dispatch(channel string, payload []byte) {
	switch channel {
	case globalChannel:
		var msg model.GlobalMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			l.logger.Error("failed to decode global feed payload", "error", err.Error())
			return
		}
		l.hub.PublishGlobal(msg)
	case privateChannel:
		var msg model.PrivateMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			l.logger.Error("failed to decode private feed payload", "error", err.Error())
			return
		}
		l.hub.PublishPrivate(msg)
	}
}
