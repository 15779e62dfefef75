package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"haru-byte/internal/config"
	"haru-byte/internal/domain"
	"haru-byte/internal/dto"
	"haru-byte/internal/handler"
	"haru-byte/internal/logger"
	"haru-byte/internal/middleware"
	"haru-byte/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Manual Mocks ---

// MockDailyProblemService
type MockDailyProblemService struct {
	GetTodayProblemFunc   func(ctx context.Context, userID string) (*dto.TodayProblemResponse, error)
	GetProblemForDateFunc func(ctx context.Context, userID string, date domain.Date) (*dto.TodayProblemResponse, error)
	GetProblemDetailFunc  func(ctx context.Context, userID, problemID string) (*dto.ProblemDetailResponse, error)
	GetProblemHistoryFunc func(ctx context.Context, userID string, pagination dto.Pagination) (*dto.ProblemHistoryResponse, error)
	SubmitAnswerFunc      func(ctx context.Context, userID, problemID string, req *dto.SubmitAnswerRequest) (*dto.SubmissionResponse, error)
}

func (m *MockDailyProblemService) GetTodayProblem(ctx context.Context, userID string) (*dto.TodayProblemResponse, error) {
	if m.GetTodayProblemFunc != nil {
		return m.GetTodayProblemFunc(ctx, userID)
	}
	panic("MockDailyProblemService.GetTodayProblemFunc not implemented")
}
func (m *MockDailyProblemService) GetProblemForDate(ctx context.Context, userID string, date domain.Date) (*dto.TodayProblemResponse, error) {
	if m.GetProblemForDateFunc != nil {
		return m.GetProblemForDateFunc(ctx, userID, date)
	}
	panic("MockDailyProblemService.GetProblemForDateFunc not implemented")
}
func (m *MockDailyProblemService) GetProblemDetail(ctx context.Context, userID, problemID string) (*dto.ProblemDetailResponse, error) {
	if m.GetProblemDetailFunc != nil {
		return m.GetProblemDetailFunc(ctx, userID, problemID)
	}
	panic("MockDailyProblemService.GetProblemDetailFunc not implemented")
}
func (m *MockDailyProblemService) GetProblemHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.ProblemHistoryResponse, error) {
	if m.GetProblemHistoryFunc != nil {
		return m.GetProblemHistoryFunc(ctx, userID, pagination)
	}
	panic("MockDailyProblemService.GetProblemHistoryFunc not implemented")
}
func (m *MockDailyProblemService) SubmitAnswer(ctx context.Context, userID, problemID string, req *dto.SubmitAnswerRequest) (*dto.SubmissionResponse, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, userID, problemID, req)
	}
	panic("MockDailyProblemService.SubmitAnswerFunc not implemented")
}

// setupProblemApp wires the handler into a fiber app with the central error
// handler and a stub auth middleware injecting the given user ID.
func setupProblemApp(svc *MockDailyProblemService, userID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.UserIDKey, userID)
		}
		return c.Next()
	})

	h := handler.NewProblemHandler(svc)
	app.Get("/api/daily-problem/today", h.GetTodayProblem)
	app.Get("/api/daily-problem/history", h.GetProblemHistory)
	app.Get("/api/daily-problem/:problemID", h.GetProblemDetail)
	app.Get("/api/daily-problem", h.GetProblemForDate)
	app.Post("/api/daily-problem/:problemID/submissions", h.SubmitAnswer)
	return app
}

func TestGetTodayProblemHandler(t *testing.T) {
	svc := &MockDailyProblemService{
		GetTodayProblemFunc: func(ctx context.Context, userID string) (*dto.TodayProblemResponse, error) {
			assert.Equal(t, "user1", userID)
			return &dto.TodayProblemResponse{
				ID:           "prob1",
				Title:        "Event Loop",
				AssignedDate: "2024-01-10",
			}, nil
		},
	}
	app := setupProblemApp(svc, "user1")

	req := httptest.NewRequest("GET", "/api/daily-problem/today", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.TodayProblemResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "prob1", body.ID)
}

func TestGetTodayProblemHandlerRequiresAuth(t *testing.T) {
	app := setupProblemApp(&MockDailyProblemService{}, "")

	req := httptest.NewRequest("GET", "/api/daily-problem/today", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetTodayProblemHandlerPreferenceRequired(t *testing.T) {
	svc := &MockDailyProblemService{
		GetTodayProblemFunc: func(ctx context.Context, userID string) (*dto.TodayProblemResponse, error) {
			return nil, domain.NewPreferenceRequiredError()
		},
	}
	app := setupProblemApp(svc, "user1")

	req := httptest.NewRequest("GET", "/api/daily-problem/today", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), string(domain.CodePreferenceRequired))
}

func TestGetProblemForDateHandlerRejectsBadDate(t *testing.T) {
	app := setupProblemApp(&MockDailyProblemService{}, "user1")

	req := httptest.NewRequest("GET", "/api/daily-problem?date=10-01-2024", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetProblemDetailHandlerNotFound(t *testing.T) {
	problemID := util.NewULID()
	svc := &MockDailyProblemService{
		GetProblemDetailFunc: func(ctx context.Context, userID, id string) (*dto.ProblemDetailResponse, error) {
			return nil, domain.NewProblemNotFoundError(id)
		},
	}
	app := setupProblemApp(svc, "user1")

	req := httptest.NewRequest("GET", "/api/daily-problem/"+problemID, nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitAnswerHandler(t *testing.T) {
	problemID := util.NewULID()
	svc := &MockDailyProblemService{
		SubmitAnswerFunc: func(ctx context.Context, userID, id string, req *dto.SubmitAnswerRequest) (*dto.SubmissionResponse, error) {
			assert.Equal(t, problemID, id)
			assert.Equal(t, "my considered answer", req.AnswerText)
			return &dto.SubmissionResponse{
				SubmissionID: "sub1",
				ProblemID:    id,
				AnswerText:   req.AnswerText,
				IsOnTime:     true,
			}, nil
		},
	}
	app := setupProblemApp(svc, "user1")

	payload, _ := json.Marshal(dto.SubmitAnswerRequest{AnswerText: "my considered answer"})
	req := httptest.NewRequest("POST", "/api/daily-problem/"+problemID+"/submissions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body dto.SubmissionResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "sub1", body.SubmissionID)
	assert.True(t, body.IsOnTime)
}

func TestSubmitAnswerHandlerValidation(t *testing.T) {
	app := setupProblemApp(&MockDailyProblemService{}, "user1")

	payload, _ := json.Marshal(dto.SubmitAnswerRequest{AnswerText: ""})
	req := httptest.NewRequest("POST", "/api/daily-problem/not-a-ulid/submissions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), string(domain.CodeValidation))
}

func TestSubmitAnswerHandlerTooShort(t *testing.T) {
	problemID := util.NewULID()
	svc := &MockDailyProblemService{
		SubmitAnswerFunc: func(ctx context.Context, userID, id string, req *dto.SubmitAnswerRequest) (*dto.SubmissionResponse, error) {
			return nil, domain.NewAnswerTooShortError(domain.MinAnswerLength)
		},
	}
	app := setupProblemApp(svc, "user1")

	payload, _ := json.Marshal(dto.SubmitAnswerRequest{AnswerText: "ab"})
	req := httptest.NewRequest("POST", "/api/daily-problem/"+problemID+"/submissions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), string(domain.CodeAnswerTooShort))
}

func TestGetProblemHistoryHandlerPagination(t *testing.T) {
	var captured dto.Pagination
	svc := &MockDailyProblemService{
		GetProblemHistoryFunc: func(ctx context.Context, userID string, pagination dto.Pagination) (*dto.ProblemHistoryResponse, error) {
			captured = pagination
			return &dto.ProblemHistoryResponse{Items: []dto.ProblemHistoryItem{}, Total: 0}, nil
		},
	}
	app := setupProblemApp(svc, "user1")

	req := httptest.NewRequest("GET", "/api/daily-problem/history?limit=5&offset=10", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, captured.Limit)
	assert.Equal(t, 10, captured.Offset)
}
