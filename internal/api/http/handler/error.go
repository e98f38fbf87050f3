package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dmaslov/campuschat-server/internal/model"
)

// respondError maps domain errors to HTTP statuses. Anything unknown is a
// generic 500 carrying the wrapped message, matching the low-detail error
// surface of the rest of the system.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, model.ErrEmailTaken):
		status = fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, model.ErrSelfChat):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
