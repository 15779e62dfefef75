package handler

import (
	"haru-byte/internal/domain"
	"haru-byte/internal/dto"
	"haru-byte/internal/service"
	"haru-byte/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	service   service.AuthService
	validator *validation.Validator
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidateSignupRequest(req.LoginID, req.Password, req.Nickname); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Signup(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidateLoginRequest(req.LoginID, req.Password); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Login(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.RefreshToken == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("refreshToken")}
	}

	resp, err := h.service.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
