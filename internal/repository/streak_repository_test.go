package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"haru-byte/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func streakColumns() []string {
	return []string{"USER_ID", "CURRENT_STREAK", "MAX_STREAK", "LAST_SOLVED_DATE", "UPDATED_AT"}
}

func TestGetStreakByUserID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXStreakRepository(db)

	rows := sqlmock.NewRows(streakColumns()).
		AddRow("user1", 3, 5, "2024-01-10", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM streaks WHERE user_id = :1`)).
		WithArgs("user1").
		WillReturnRows(rows)

	s, err := repo.GetByUserID(context.Background(), "user1")
	assert.NoError(t, err)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 5, s.MaxStreak)
	assert.Equal(t, "2024-01-10", s.LastSolvedDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStreakByUserIDNoHistory(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXStreakRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM streaks WHERE user_id = :1`)).
		WithArgs("user1").
		WillReturnRows(sqlmock.NewRows(streakColumns()))

	s, err := repo.GetByUserID(context.Background(), "user1")
	assert.NoError(t, err)
	assert.NotNil(t, s, "a user without history gets the zero-value streak")
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 0, s.MaxStreak)
	assert.Nil(t, s.LastSolvedDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveStreak(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXStreakRepository(db)

	lastSolved := domain.NewDate(2024, time.January, 11)
	s := &domain.Streak{UserID: "user1", CurrentStreak: 4, MaxStreak: 4, LastSolvedDate: &lastSolved}

	mock.ExpectExec(`MERGE INTO streaks`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), s)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
