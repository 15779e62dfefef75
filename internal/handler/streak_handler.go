package handler

import (
	"haru-byte/internal/service"

	"github.com/gofiber/fiber/v2"
)

// StreakHandler handles streak HTTP requests
type StreakHandler struct {
	service service.StreakService
}

// NewStreakHandler creates a new StreakHandler instance
func NewStreakHandler(service service.StreakService) *StreakHandler {
	return &StreakHandler{service: service}
}

// GetStreak handles GET /api/streaks
func (h *StreakHandler) GetStreak(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetStreak(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
