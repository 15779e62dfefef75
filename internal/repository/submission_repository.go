package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"haru-byte/internal/domain"
	"haru-byte/internal/repository/models"
	"haru-byte/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxSubmissionRepository implements domain.SubmissionRepository using sqlx.
type sqlxSubmissionRepository struct {
	db *sqlx.DB
}

// NewSQLXSubmissionRepository creates a new instance of sqlxSubmissionRepository.
func NewSQLXSubmissionRepository(db *sqlx.DB) domain.SubmissionRepository {
	return &sqlxSubmissionRepository{db: db}
}

func toDomainSubmission(m *models.Submission) *domain.Submission {
	if m == nil {
		return nil
	}
	return &domain.Submission{
		ID:          m.ID,
		UserID:      m.UserID,
		ProblemID:   m.ProblemID,
		AnswerText:  m.AnswerText,
		SubmittedAt: m.SubmittedAt,
		IsOnTime:    m.IsOnTime == 1,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FindByProblemID retrieves the submission for a problem. Returns nil, nil
// when the problem has not been answered.
func (r *sqlxSubmissionRepository) FindByProblemID(ctx context.Context, problemID string) (*domain.Submission, error) {
	var m models.Submission
	query := `SELECT * FROM submissions WHERE problem_id = :1`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, problemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return toDomainSubmission(&m), nil
}

// Upsert stores the submission. The unique constraint on problem_id plus
// the MERGE guarantees at most one row per problem: concurrent submits for
// the same problem converge to a single record, last write wins.
func (r *sqlxSubmissionRepository) Upsert(ctx context.Context, submission *domain.Submission) error {
	now := time.Now()

	query := `MERGE INTO submissions s
	          USING (SELECT :1 AS problem_id FROM dual) src
	          ON (s.problem_id = src.problem_id)
	          WHEN MATCHED THEN UPDATE SET
	            s.answer_text = :2,
	            s.submitted_at = :3,
	            s.is_on_time = :4,
	            s.updated_at = :5
	          WHEN NOT MATCHED THEN INSERT
	            (id, user_id, problem_id, answer_text, submitted_at, is_on_time, created_at, updated_at)
	            VALUES (:6, :7, :8, :9, :10, :11, :12, :13)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		submission.ProblemID,
		submission.AnswerText,
		submission.SubmittedAt,
		util.BoolToInt(submission.IsOnTime),
		now,
		submission.ID,
		submission.UserID,
		submission.ProblemID,
		submission.AnswerText,
		submission.SubmittedAt,
		util.BoolToInt(submission.IsOnTime),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert submission: %w", err)
	}
	return nil
}

// ListByUser retrieves all submissions of a user, newest first.
func (r *sqlxSubmissionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Submission, error) {
	var ms []models.Submission
	query := `SELECT * FROM submissions WHERE user_id = :1 ORDER BY submitted_at DESC`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &ms, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions := make([]*domain.Submission, 0, len(ms))
	for i := range ms {
		submissions = append(submissions, toDomainSubmission(&ms[i]))
	}
	return submissions, nil
}
