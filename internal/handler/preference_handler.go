package handler

import (
	"haru-byte/internal/domain"
	"haru-byte/internal/dto"
	"haru-byte/internal/service"
	"haru-byte/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PreferenceHandler handles preference HTTP requests
type PreferenceHandler struct {
	service   service.PreferenceService
	validator *validation.Validator
}

// NewPreferenceHandler creates a new PreferenceHandler instance
func NewPreferenceHandler(service service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GetCategories handles GET /api/categories
func (h *PreferenceHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.GetCategories())
}

// RegisterPreference handles POST /api/members/preferences
func (h *PreferenceHandler) RegisterPreference(c *fiber.Ctx) error {
	userID, req, err := h.parsePreferenceRequest(c)
	if err != nil {
		return err
	}

	resp, err := h.service.RegisterPreference(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdatePreference handles PATCH /api/members/preferences
func (h *PreferenceHandler) UpdatePreference(c *fiber.Ctx) error {
	userID, req, err := h.parsePreferenceRequest(c)
	if err != nil {
		return err
	}

	resp, err := h.service.UpdatePreference(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *PreferenceHandler) parsePreferenceRequest(c *fiber.Ctx) (string, *dto.PreferenceRequest, error) {
	userID, err := requireUserID(c)
	if err != nil {
		return "", nil, err
	}

	var req dto.PreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return "", nil, domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidatePreferenceRequest(req.TopicID, req.Difficulty); len(errs) > 0 {
		return "", nil, errs
	}
	return userID, &req, nil
}
