package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dmaslov/campuschat-server/internal/api/http/middleware"
	"github.com/dmaslov/campuschat-server/internal/logger"
	"github.com/dmaslov/campuschat-server/internal/model"
	"github.com/dmaslov/campuschat-server/internal/service"
)

// Profile serves profile reads, partial updates and avatar uploads.
type Profile struct {
	profile *service.Profile
	logger  *logger.Logger
}

func NewProfile(profile *service.Profile, logger *logger.Logger) *Profile {
	return &Profile{profile: profile, logger: logger}
}

type profileResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	Career      string `json:"career"`
	PhotoURL    string `json:"photo_url"`
	AvatarURL   string `json:"avatar_url"`
}

// Get handles GET /api/profile/:id.
func (h *Profile) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid profile id"})
	}

	profile, err := h.profile.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profileResponse{
		ID:          profile.ID.String(),
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
		Career:      profile.Career,
		PhotoURL:    profile.PhotoURL,
		AvatarURL:   h.profile.AvatarURL(profile.PhotoURL),
	})
}

type profileUpdateRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Career      *string `json:"career"`
}

// Update handles PATCH /api/profile. Absent fields keep their stored value.
func (h *Profile) Update(c *fiber.Ctx) error {
	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	err := h.profile.Update(c.UserContext(), middleware.SessionID(c), middleware.UserID(c), model.ProfilePatch{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Career:      req.Career,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Avatar handles POST /api/profile/avatar with an "avatar" multipart file.
func (h *Profile) Avatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to open avatar file"})
	}
	defer file.Close()

	key, err := h.profile.UpdateAvatar(c.UserContext(), middleware.SessionID(c), middleware.UserID(c), file)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"photo_url":  key,
		"avatar_url": h.profile.AvatarURL(key),
	})
}
