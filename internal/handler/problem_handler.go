package handler

import (
	"strconv"

	"haru-byte/internal/domain"
	"haru-byte/internal/dto"
	"haru-byte/internal/middleware"
	"haru-byte/internal/service"
	"haru-byte/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ProblemHandler handles daily problem HTTP requests
type ProblemHandler struct {
	service   service.DailyProblemService
	validator *validation.Validator
}

// NewProblemHandler creates a new ProblemHandler instance
func NewProblemHandler(service service.DailyProblemService) *ProblemHandler {
	return &ProblemHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GetTodayProblem handles GET /api/daily-problem/today
func (h *ProblemHandler) GetTodayProblem(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetTodayProblem(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetProblemForDate handles GET /api/daily-problem?date=YYYY-MM-DD
func (h *ProblemHandler) GetProblemForDate(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	dateParam := c.Query("date")
	if errs := h.validator.ValidateDateParam(dateParam); len(errs) > 0 {
		return errs
	}
	if dateParam == "" {
		return h.GetTodayProblem(c)
	}

	date, err := domain.ParseDate(dateParam)
	if err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("date", dateParam)}
	}

	resp, err := h.service.GetProblemForDate(c.Context(), userID, date)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetProblemDetail handles GET /api/daily-problem/:problemID
func (h *ProblemHandler) GetProblemDetail(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	problemID := c.Params("problemID")
	if errs := h.validator.ValidateProblemID(problemID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GetProblemDetail(c.Context(), userID, problemID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetProblemHistory handles GET /api/daily-problem/history
func (h *ProblemHandler) GetProblemHistory(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	pagination := parsePagination(c)
	resp, err := h.service.GetProblemHistory(c.Context(), userID, pagination)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer handles POST /api/daily-problem/:problemID/submissions
func (h *ProblemHandler) SubmitAnswer(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	problemID := c.Params("problemID")

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidateSubmitAnswerRequest(problemID, req.AnswerText); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitAnswer(c.Context(), userID, problemID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// requireUserID pulls the authenticated user ID set by the auth middleware.
func requireUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.NewUnauthorizedError("User ID not found in context")
	}
	return userID, nil
}

func parsePagination(c *fiber.Ctx) dto.Pagination {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= maxHistoryLimit {
			limit = parsed
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return dto.Pagination{Limit: limit, Offset: offset}
}
