package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmaslov/campuschat-server/internal/api/http/middleware"
	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/service"
)

// Chat serves the global feed and private conversations.
type Chat struct {
	chat   *service.Chat
	auth   *service.Auth
	logger *logger.Logger
}

func NewChat(chat *service.Chat, auth *service.Auth, logger *logger.Logger) *Chat {
	return &Chat{chat: chat, auth: auth, logger: logger}
}

type messageRequest struct {
	Content string `json:"content"`
}

// ListGlobal handles GET /api/chat/global.
func (h *Chat) ListGlobal(c *fiber.Ctx) error {
	messages, err := h.chat.FetchGlobalMessages(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(messages)
}

// SendGlobal handles POST /api/chat/global. Sender identity comes from the
// session's auth state.
func (h *Chat) SendGlobal(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}

	snap := h.auth.CurrentUser(c.UserContext(), middleware.SessionID(c))
	err := h.chat.SendGlobalMessage(c.UserContext(), model.NewGlobalMessage{
		SenderID: middleware.UserID(c).String(),
		Email:    snap.Email,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

// ListPrivate handles GET /api/chat/private/:peer.
func (h *Chat) ListPrivate(c *fiber.Ctx) error {
	messages, err := h.chat.FetchPrivateMessages(c.UserContext(), middleware.UserID(c).String(), c.Params("peer"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(messages)
}

// SendPrivate handles POST /api/chat/private/:peer.
func (h *Chat) SendPrivate(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content is required"})
	}

	err := h.chat.SendPrivateMessage(c.UserContext(), middleware.UserID(c).String(), c.Params("peer"), req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusCreated)
}
