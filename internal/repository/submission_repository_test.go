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

func submissionColumns() []string {
	return []string{"ID", "USER_ID", "PROBLEM_ID", "ANSWER_TEXT", "SUBMITTED_AT", "IS_ON_TIME", "CREATED_AT", "UPDATED_AT"}
}

func TestFindByProblemID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXSubmissionRepository(db)

	now := time.Now().Truncate(time.Second)
	rows := sqlmock.NewRows(submissionColumns()).
		AddRow("sub1", "user1", "prob1", "useEffect runs after paint.", now, 1, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM submissions WHERE problem_id = :1`)).
		WithArgs("prob1").
		WillReturnRows(rows)

	s, err := repo.FindByProblemID(context.Background(), "prob1")
	assert.NoError(t, err)
	assert.NotNil(t, s)
	assert.Equal(t, "sub1", s.ID)
	assert.Equal(t, "useEffect runs after paint.", s.AnswerText)
	assert.True(t, s.IsOnTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByProblemIDNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXSubmissionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM submissions WHERE problem_id = :1`)).
		WithArgs("prob-unanswered").
		WillReturnRows(sqlmock.NewRows(submissionColumns()))

	s, err := repo.FindByProblemID(context.Background(), "prob-unanswered")
	assert.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSubmission(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXSubmissionRepository(db)

	sub := domain.NewSubmission("user1", "prob1", "a valid answer", time.Now())
	sub.ID = "sub1"
	sub.IsOnTime = true

	mock.ExpectExec(`MERGE INTO submissions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), sub)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
