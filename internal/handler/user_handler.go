package handler

import (
	"haru-byte/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe handles GET /api/users/me
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetMe(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
