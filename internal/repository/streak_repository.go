package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"haru-byte/internal/domain"
	"haru-byte/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxStreakRepository implements domain.StreakRepository using sqlx.
type sqlxStreakRepository struct {
	db *sqlx.DB
}

// NewSQLXStreakRepository creates a new instance of sqlxStreakRepository.
func NewSQLXStreakRepository(db *sqlx.DB) domain.StreakRepository {
	return &sqlxStreakRepository{db: db}
}

func toDomainStreak(m *models.Streak) (*domain.Streak, error) {
	if m == nil {
		return nil, nil
	}
	s := &domain.Streak{
		UserID:        m.UserID,
		CurrentStreak: m.CurrentStreak,
		MaxStreak:     m.MaxStreak,
	}
	if m.LastSolvedDate.Valid {
		d, err := domain.ParseDate(m.LastSolvedDate.String)
		if err != nil {
			return nil, fmt.Errorf("stored streak for user %s has malformed last solved date: %w", m.UserID, err)
		}
		s.LastSolvedDate = &d
	}
	return s, nil
}

// GetByUserID retrieves the streak row for a user. A user without history
// gets the zero-value streak rather than an error.
func (r *sqlxStreakRepository) GetByUserID(ctx context.Context, userID string) (*domain.Streak, error) {
	var m models.Streak
	query := `SELECT * FROM streaks WHERE user_id = :1`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewStreak(userID), nil
		}
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return toDomainStreak(&m)
}

// Save upserts the streak row for a user.
func (r *sqlxStreakRepository) Save(ctx context.Context, streak *domain.Streak) error {
	var lastSolved sql.NullString
	if streak.LastSolvedDate != nil {
		lastSolved = sql.NullString{String: streak.LastSolvedDate.String(), Valid: true}
	}
	now := time.Now()

	query := `MERGE INTO streaks s
	          USING (SELECT :1 AS user_id FROM dual) src
	          ON (s.user_id = src.user_id)
	          WHEN MATCHED THEN UPDATE SET
	            s.current_streak = :2,
	            s.max_streak = :3,
	            s.last_solved_date = :4,
	            s.updated_at = :5
	          WHEN NOT MATCHED THEN INSERT
	            (user_id, current_streak, max_streak, last_solved_date, updated_at)
	            VALUES (:6, :7, :8, :9, :10)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		streak.UserID,
		streak.CurrentStreak,
		streak.MaxStreak,
		lastSolved,
		now,
		streak.UserID,
		streak.CurrentStreak,
		streak.MaxStreak,
		lastSolved,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	return nil
}
