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

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		LoginID:      m.LoginID,
		Nickname:     m.Nickname,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		LastLoginAt:  util.NullTimeToTimePtr(m.LastLoginAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    util.NullTimeToTimePtr(m.DeletedAt),
	}
}

// Create inserts a new user.
func (r *sqlxUserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	query := `INSERT INTO users (id, login_id, nickname, password_hash, role, last_login_at, created_at, updated_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		user.ID,
		user.LoginID,
		user.Nickname,
		user.PasswordHash,
		string(user.Role),
		util.TimePtrToNullTime(user.LastLoginAt),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByLoginID retrieves a user by login ID. Returns nil, nil when not found.
func (r *sqlxUserRepository) GetByLoginID(ctx context.Context, loginID string) (*domain.User, error) {
	var m models.User
	query := `SELECT * FROM users WHERE login_id = :1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, loginID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by login_id: %w", err)
	}
	return toDomainUser(&m), nil
}

// GetByID retrieves a user by internal ID. Returns nil, nil when not found.
func (r *sqlxUserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	query := `SELECT * FROM users WHERE id = :1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &m, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&m), nil
}

// UpdateRole changes a user's role. First preference registration promotes
// GUEST to MEMBER.
func (r *sqlxUserRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole) error {
	query := `UPDATE users SET role = :1, updated_at = :2 WHERE id = :3 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, string(role), time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TouchLastLogin stamps the user's last login time.
func (r *sqlxUserRepository) TouchLastLogin(ctx context.Context, userID string) error {
	now := time.Now()
	query := `UPDATE users SET last_login_at = :1, updated_at = :2 WHERE id = :3 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, now, now, userID); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
