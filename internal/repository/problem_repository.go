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

// sqlxProblemRepository implements domain.ProblemRepository using sqlx.
type sqlxProblemRepository struct {
	db *sqlx.DB
}

// NewSQLXProblemRepository creates a new instance of sqlxProblemRepository.
func NewSQLXProblemRepository(db *sqlx.DB) domain.ProblemRepository {
	return &sqlxProblemRepository{db: db}
}

func toDomainProblem(m *models.Problem) (*domain.Problem, error) {
	if m == nil {
		return nil, nil
	}
	assignedDate, err := domain.ParseDate(m.AssignedDate)
	if err != nil {
		return nil, fmt.Errorf("stored problem %s has malformed assigned date: %w", m.ID, err)
	}
	difficulty := domain.Difficulty(m.Difficulty)
	if !difficulty.IsValid() {
		return nil, fmt.Errorf("stored problem %s has unknown difficulty %q", m.ID, m.Difficulty)
	}
	return &domain.Problem{
		ID:           m.ID,
		UserID:       m.UserID,
		Title:        m.Title,
		Description:  m.Description,
		ModelAnswer:  m.ModelAnswer,
		Topic:        m.Topic,
		Difficulty:   difficulty,
		AssignedDate: assignedDate,
		IsFallback:   m.IsFallback == 1,
		CreatedAt:    m.CreatedAt,
	}, nil
}

func fromDomainProblem(p *domain.Problem) *models.Problem {
	if p == nil {
		return nil
	}
	return &models.Problem{
		ID:           p.ID,
		UserID:       p.UserID,
		Title:        p.Title,
		Description:  p.Description,
		ModelAnswer:  p.ModelAnswer,
		Topic:        p.Topic,
		Difficulty:   string(p.Difficulty),
		AssignedDate: p.AssignedDate.String(),
		IsFallback:   util.BoolToInt(p.IsFallback),
		CreatedAt:    p.CreatedAt,
	}
}

// CreateIfAbsent inserts the problem unless a row already exists for the
// same (user_id, assigned_date). The MERGE plus the unique index makes the
// operation idempotent across processes; the row returned is whatever the
// database holds for that date after the statement.
func (r *sqlxProblemRepository) CreateIfAbsent(ctx context.Context, problem *domain.Problem) (*domain.Problem, error) {
	m := fromDomainProblem(problem)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	query := `MERGE INTO problems p
	          USING (SELECT :1 AS user_id, :2 AS assigned_date FROM dual) src
	          ON (p.user_id = src.user_id AND p.assigned_date = src.assigned_date)
	          WHEN NOT MATCHED THEN INSERT
	            (id, user_id, title, description, model_answer, topic, difficulty, assigned_date, is_fallback, created_at)
	            VALUES (:3, :4, :5, :6, :7, :8, :9, :10, :11, :12)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		m.UserID,
		m.AssignedDate,
		m.ID,
		m.UserID,
		m.Title,
		m.Description,
		m.ModelAnswer,
		m.Topic,
		m.Difficulty,
		m.AssignedDate,
		m.IsFallback,
		m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to merge problem: %w", err)
	}

	stored, err := r.GetByUserAndDate(ctx, problem.UserID, problem.AssignedDate)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("problem for user %s on %s missing after merge", problem.UserID, problem.AssignedDate)
	}
	return stored, nil
}

// GetByUserAndDate retrieves the problem assigned to a user for a date.
// Returns nil, nil when no problem exists yet.
func (r *sqlxProblemRepository) GetByUserAndDate(ctx context.Context, userID string, date domain.Date) (*domain.Problem, error) {
	var m models.Problem
	query := `SELECT * FROM problems WHERE user_id = :1 AND assigned_date = :2`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, userID, date.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem by user and date: %w", err)
	}
	return toDomainProblem(&m)
}

// GetByID retrieves a problem by its ID. Returns nil, nil when not found.
func (r *sqlxProblemRepository) GetByID(ctx context.Context, problemID string) (*domain.Problem, error) {
	var m models.Problem
	query := `SELECT * FROM problems WHERE id = :1`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, problemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem by id: %w", err)
	}
	return toDomainProblem(&m)
}

// ListByUser retrieves a page of a user's problems, newest assigned date
// first, together with the total count.
func (r *sqlxProblemRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Problem, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT * FROM (
	            SELECT p.*, ROW_NUMBER() OVER (ORDER BY p.assigned_date DESC) AS rn
	            FROM problems p WHERE p.user_id = :1
	          ) WHERE rn > :2 AND rn <= :3`

	executor := GetExecutor(ctx, r.db)
	rows := []struct {
		models.Problem
		RN int `db:"RN"`
	}{}
	if err := executor.SelectContext(ctx, &rows, query, userID, offset, offset+limit); err != nil {
		return nil, 0, fmt.Errorf("failed to list problems: %w", err)
	}

	problems := make([]*domain.Problem, 0, len(rows))
	for i := range rows {
		p, err := toDomainProblem(&rows[i].Problem)
		if err != nil {
			return nil, 0, err
		}
		problems = append(problems, p)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM problems WHERE user_id = :1`
	if err := executor.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count problems: %w", err)
	}

	return problems, total, nil
}
