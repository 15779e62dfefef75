package service

import (
	"context"
	"fmt"

	"haru-byte/internal/domain"
	"haru-byte/internal/dto"
	"haru-byte/internal/logger"
	"haru-byte/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DailyProblemService defines the interface for daily problem operations.
type DailyProblemService interface {
	GetTodayProblem(ctx context.Context, userID string) (*dto.TodayProblemResponse, error)
	GetProblemForDate(ctx context.Context, userID string, date domain.Date) (*dto.TodayProblemResponse, error)
	GetProblemDetail(ctx context.Context, userID, problemID string) (*dto.ProblemDetailResponse, error)
	GetProblemHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.ProblemHistoryResponse, error)
	SubmitAnswer(ctx context.Context, userID, problemID string, req *dto.SubmitAnswerRequest) (*dto.SubmissionResponse, error)
}

type dailyProblemService struct {
	problemRepo    domain.ProblemRepository
	submissionRepo domain.SubmissionRepository
	streakRepo     domain.StreakRepository
	preferenceRepo domain.PreferenceRepository
	generator      domain.ProblemGenerator
	txManager      domain.TransactionManager
	streakService  StreakService
	clock          domain.Clock
	onTimePolicy   domain.OnTimePolicy
	sf             singleflight.Group
}

// NewDailyProblemService creates a new instance of DailyProblemService.
func NewDailyProblemService(
	problemRepo domain.ProblemRepository,
	submissionRepo domain.SubmissionRepository,
	streakRepo domain.StreakRepository,
	preferenceRepo domain.PreferenceRepository,
	generator domain.ProblemGenerator,
	txManager domain.TransactionManager,
	streakService StreakService,
	clock domain.Clock,
	onTimePolicy domain.OnTimePolicy,
) DailyProblemService {
	return &dailyProblemService{
		problemRepo:    problemRepo,
		submissionRepo: submissionRepo,
		streakRepo:     streakRepo,
		preferenceRepo: preferenceRepo,
		generator:      generator,
		txManager:      txManager,
		streakService:  streakService,
		clock:          clock,
		onTimePolicy:   onTimePolicy,
	}
}

// GetTodayProblem implements DailyProblemService.
func (s *dailyProblemService) GetTodayProblem(ctx context.Context, userID string) (*dto.TodayProblemResponse, error) {
	return s.GetProblemForDate(ctx, userID, s.clock.Today())
}

// GetProblemForDate returns the problem assigned to the user for the given
// date, materializing it on first access. Repeated calls for the same date
// always return the same problem.
func (s *dailyProblemService) GetProblemForDate(ctx context.Context, userID string, date domain.Date) (*dto.TodayProblemResponse, error) {
	problem, err := s.getOrCreateProblem(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.FindByProblemID(ctx, problem.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up submission", err)
	}

	return &dto.TodayProblemResponse{
		ID:           problem.ID,
		Title:        problem.Title,
		Description:  problem.Description,
		Topic:        problem.Topic,
		Difficulty:   string(problem.Difficulty),
		AssignedDate: problem.AssignedDate.String(),
		IsSolved:     submission != nil,
	}, nil
}

// getOrCreateProblem is the materialization core. Concurrent requests for the
// same (user, date) are collapsed with singleflight; the database unique
// constraint on (user_id, assigned_date) settles races across processes.
func (s *dailyProblemService) getOrCreateProblem(ctx context.Context, userID string, date domain.Date) (*domain.Problem, error) {
	problem, err := s.problemRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get daily problem", err)
	}
	if problem != nil {
		return problem, nil
	}

	key := fmt.Sprintf("%s:%s", userID, date)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.createProblem(ctx, userID, date)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Problem), nil
}

func (s *dailyProblemService) createProblem(ctx context.Context, userID string, date domain.Date) (*domain.Problem, error) {
	// Re-check inside the flight; another caller may have created it.
	problem, err := s.problemRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get daily problem", err)
	}
	if problem != nil {
		return problem, nil
	}

	preference, err := s.preferenceRepo.GetEffectiveForDate(ctx, userID, date)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get effective preference", err)
	}
	if preference == nil {
		return nil, domain.NewPreferenceRequiredError()
	}

	content, genErr := s.generator.Generate(ctx, preference.TopicName, preference.Difficulty)
	isFallback := false
	if genErr != nil {
		logger.Get().Warn("Problem generation failed, using fallback content",
			zap.Error(genErr),
			zap.String("userID", userID),
			zap.String("topic", preference.TopicName),
			zap.String("date", date.String()))
		content = domain.FallbackProblem(preference.TopicName)
		isFallback = true
	}

	problem = domain.NewProblem(
		userID,
		content.Title,
		content.Description,
		content.ModelAnswer,
		preference.TopicName,
		preference.Difficulty,
		date,
	)
	problem.ID = util.NewULID()
	problem.IsFallback = isFallback

	if err := problem.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.problemRepo.CreateIfAbsent(ctx, problem)
	if err != nil {
		return nil, domain.NewInternalError("Failed to persist daily problem", err)
	}

	logger.Get().Info("Materialized daily problem",
		zap.String("userID", userID),
		zap.String("problemID", stored.ID),
		zap.String("date", date.String()),
		zap.Bool("isFallback", stored.IsFallback))
	return stored, nil
}

// GetProblemDetail implements DailyProblemService. The model answer is
// withheld until the user has submitted their own answer.
func (s *dailyProblemService) GetProblemDetail(ctx context.Context, userID, problemID string) (*dto.ProblemDetailResponse, error) {
	problem, err := s.getOwnedProblem(ctx, userID, problemID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProblemDetailResponse{
		ID:           problem.ID,
		Title:        problem.Title,
		Description:  problem.Description,
		Topic:        problem.Topic,
		Difficulty:   string(problem.Difficulty),
		AssignedDate: problem.AssignedDate.String(),
	}

	submission, err := s.submissionRepo.FindByProblemID(ctx, problem.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up submission", err)
	}
	if submission != nil {
		answer := submission.AnswerText
		submittedAt := submission.SubmittedAt.Format("2006-01-02T15:04:05Z07:00")
		modelAnswer := problem.ModelAnswer
		resp.UserAnswer = &answer
		resp.SubmittedAt = &submittedAt
		resp.ModelAnswer = &modelAnswer
	}

	return resp, nil
}

// GetProblemHistory implements DailyProblemService.
func (s *dailyProblemService) GetProblemHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.ProblemHistoryResponse, error) {
	problems, total, err := s.problemRepo.ListByUser(ctx, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list problem history", err)
	}

	submissions, err := s.submissionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list submissions", err)
	}
	solved := make(map[string]bool, len(submissions))
	for _, sub := range submissions {
		solved[sub.ProblemID] = true
	}

	items := make([]dto.ProblemHistoryItem, 0, len(problems))
	for _, p := range problems {
		items = append(items, dto.ProblemHistoryItem{
			ID:           p.ID,
			Title:        p.Title,
			Topic:        p.Topic,
			Difficulty:   string(p.Difficulty),
			AssignedDate: p.AssignedDate.String(),
			IsSolved:     solved[p.ID],
		})
	}

	return &dto.ProblemHistoryResponse{Items: items, Total: total}, nil
}

// SubmitAnswer implements DailyProblemService. The first submission for a
// problem advances the streak inside the same transaction that stores the
// submission. A resubmission only replaces the answer and never touches the
// streak.
func (s *dailyProblemService) SubmitAnswer(ctx context.Context, userID, problemID string, req *dto.SubmitAnswerRequest) (*dto.SubmissionResponse, error) {
	problem, err := s.getOwnedProblem(ctx, userID, problemID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	submission := domain.NewSubmission(userID, problem.ID, req.AnswerText, now)
	if err := submission.Validate(); err != nil {
		return nil, err
	}
	submission.IsOnTime = s.onTimePolicy.IsOnTime(problem.AssignedDate, now)

	existing, err := s.submissionRepo.FindByProblemID(ctx, problem.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up submission", err)
	}

	if existing != nil {
		submission.ID = existing.ID
		submission.CreatedAt = existing.CreatedAt
		if err := s.submissionRepo.Upsert(ctx, submission); err != nil {
			return nil, domain.NewInternalError("Failed to update submission", err)
		}
	} else {
		submission.ID = util.NewULID()
		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.submissionRepo.Upsert(txCtx, submission); err != nil {
				return fmt.Errorf("failed to store submission: %w", err)
			}

			streak, err := s.streakRepo.GetByUserID(txCtx, userID)
			if err != nil {
				return fmt.Errorf("failed to load streak: %w", err)
			}
			if streak.Advance(s.clock.Today()) {
				if err := s.streakRepo.Save(txCtx, streak); err != nil {
					return fmt.Errorf("failed to save streak: %w", err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, domain.NewInternalError("Failed to record submission", err)
		}

		if err := s.streakService.InvalidateStreakCache(ctx, userID); err != nil {
			logger.Get().Warn("Failed to invalidate streak cache",
				zap.Error(err),
				zap.String("userID", userID))
		}
	}

	return &dto.SubmissionResponse{
		SubmissionID: submission.ID,
		ProblemID:    problem.ID,
		AnswerText:   submission.AnswerText,
		SubmittedAt:  submission.SubmittedAt.Format("2006-01-02T15:04:05Z07:00"),
		IsOnTime:     submission.IsOnTime,
		ModelAnswer:  problem.ModelAnswer,
	}, nil
}

// getOwnedProblem loads a problem and hides its existence from other users.
func (s *dailyProblemService) getOwnedProblem(ctx context.Context, userID, problemID string) (*domain.Problem, error) {
	problem, err := s.problemRepo.GetByID(ctx, problemID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get problem", err)
	}
	if problem == nil || problem.UserID != userID {
		return nil, domain.NewProblemNotFoundError(problemID)
	}
	return problem, nil
}
