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

// sqlxPreferenceRepository implements domain.PreferenceRepository using sqlx.
type sqlxPreferenceRepository struct {
	db *sqlx.DB
}

// NewSQLXPreferenceRepository creates a new instance of sqlxPreferenceRepository.
func NewSQLXPreferenceRepository(db *sqlx.DB) domain.PreferenceRepository {
	return &sqlxPreferenceRepository{db: db}
}

func toDomainPreference(m *models.Preference) (*domain.Preference, error) {
	if m == nil {
		return nil, nil
	}
	effective, err := domain.ParseDate(m.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("stored preference %s has malformed effective date: %w", m.ID, err)
	}
	return &domain.Preference{
		ID:            m.ID,
		UserID:        m.UserID,
		TopicID:       m.TopicID,
		TopicName:     m.TopicName,
		Difficulty:    domain.Difficulty(m.Difficulty),
		EffectiveDate: effective,
		CreatedAt:     m.CreatedAt,
	}, nil
}

// Create appends a preference row. History is never updated in place; the
// effective-date query below picks the right row per day.
func (r *sqlxPreferenceRepository) Create(ctx context.Context, preference *domain.Preference) error {
	createdAt := preference.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `INSERT INTO preferences (id, user_id, topic_id, topic_name, difficulty, effective_date, created_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		preference.ID,
		preference.UserID,
		preference.TopicID,
		preference.TopicName,
		string(preference.Difficulty),
		preference.EffectiveDate.String(),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create preference: %w", err)
	}
	return nil
}

// GetEffectiveForDate returns the newest preference effective on or before
// the given date, or nil, nil when the user has none that applies yet.
func (r *sqlxPreferenceRepository) GetEffectiveForDate(ctx context.Context, userID string, date domain.Date) (*domain.Preference, error) {
	var m models.Preference
	query := `SELECT * FROM preferences
	          WHERE user_id = :1 AND effective_date <= :2
	          ORDER BY effective_date DESC, created_at DESC
	          FETCH FIRST 1 ROWS ONLY`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, userID, date.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get effective preference: %w", err)
	}
	return toDomainPreference(&m)
}

// GetLatest returns the most recently created preference regardless of its
// effective date, or nil, nil when the user has never set one.
func (r *sqlxPreferenceRepository) GetLatest(ctx context.Context, userID string) (*domain.Preference, error) {
	var m models.Preference
	query := `SELECT * FROM preferences
	          WHERE user_id = :1
	          ORDER BY created_at DESC
	          FETCH FIRST 1 ROWS ONLY`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest preference: %w", err)
	}
	return toDomainPreference(&m)
}
