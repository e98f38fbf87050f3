package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmaslov/campuschat-server/internal/api/http/middleware"
	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/service"
)

// Auth serves registration, login, logout and current-user.
type Auth struct {
	auth   *service.Auth
	logger *logger.Logger
}

func NewAuth(auth *service.Auth, logger *logger.Logger) *Auth {
	return &Auth{auth: auth, logger: logger}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and password are required"})
	}

	sess, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sessionResponse{Token: sess.Token, User: sess.State})
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	sess, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(sessionResponse{Token: sess.Token, User: sess.State})
}

// Logout handles POST /api/auth/logout.
func (h *Auth) Logout(c *fiber.Ctx) error {
	h.auth.Logout(c.UserContext(), middleware.SessionID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (h *Auth) Me(c *fiber.Ctx) error {
	return c.JSON(h.auth.CurrentUser(c.UserContext(), middleware.SessionID(c)))
}
