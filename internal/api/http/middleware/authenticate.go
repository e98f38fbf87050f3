package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
)

// Locals keys set by Authenticate and read by handlers.
const (
	LocalUserID    = "user_id"
	LocalSessionID = "session_id"
)

// Authenticate validates bearer tokens and injects the user and session
// identifiers into request locals. Websocket endpoints cannot set headers
// from a browser, so a "token" query parameter is accepted as a fallback.
type Authenticate struct {
	tokens model.TokenManager
	logger *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens model.TokenManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, logger: logger}
}

// Handle parses the token, validates it and stores the identity in locals.
func (m *Authenticate) Handle(c *fiber.Ctx) error {
	tokenString := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization token"})
	}

	userID, sessionID, err := m.tokens.Parse(tokenString)
	if err != nil {
		m.logger.Debug("rejected authorization token", "error", err.Error())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization token"})
	}

	c.Locals(LocalUserID, userID)
	c.Locals(LocalSessionID, sessionID)
	return c.Next()
}

// UserID reads the authenticated user id from request locals.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(LocalUserID).(uuid.UUID)
	return id
}

// SessionID reads the session id from request locals.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}
