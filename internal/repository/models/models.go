package models

import (
	"database/sql"
	"time"
)

// Problem is the database row for a daily problem. ASSIGNED_DATE is stored
// as a CHAR(10) YYYY-MM-DD string; ISO dates compare correctly as text and
// survive timezone configuration changes untouched.
type Problem struct {
	ID           string    `db:"ID"`            // ULID
	UserID       string    `db:"USER_ID"`       // Foreign key to users
	Title        string    `db:"TITLE"`         // Problem title
	Description  string    `db:"DESCRIPTION"`   // Full problem statement
	ModelAnswer  string    `db:"MODEL_ANSWER"`  // AI-authored model answer
	Topic        string    `db:"TOPIC"`         // Topic name at generation time
	Difficulty   string    `db:"DIFFICULTY"`    // EASY | MEDIUM | HARD
	AssignedDate string    `db:"ASSIGNED_DATE"` // YYYY-MM-DD, unique per user
	IsFallback   int       `db:"IS_FALLBACK"`   // 1 when generation failed and placeholder content was stored
	CreatedAt    time.Time `db:"CREATED_AT"`
}

// Submission is the database row for a user's answer. PROBLEM_ID carries a
// unique constraint: resubmissions update this row in place.
type Submission struct {
	ID          string    `db:"ID"`         // ULID
	UserID      string    `db:"USER_ID"`    // Foreign key to users
	ProblemID   string    `db:"PROBLEM_ID"` // Foreign key to problems, unique
	AnswerText  string    `db:"ANSWER_TEXT"`
	SubmittedAt time.Time `db:"SUBMITTED_AT"` // Timestamp of the last (re)submission
	IsOnTime    int       `db:"IS_ON_TIME"`   // 1 when submitted before the cutoff
	CreatedAt   time.Time `db:"CREATED_AT"`
	UpdatedAt   time.Time `db:"UPDATED_AT"`
}

// Streak is the single bookkeeping row per user.
type Streak struct {
	UserID         string         `db:"USER_ID"`
	CurrentStreak  int            `db:"CURRENT_STREAK"`
	MaxStreak      int            `db:"MAX_STREAK"`
	LastSolvedDate sql.NullString `db:"LAST_SOLVED_DATE"` // YYYY-MM-DD
	UpdatedAt      time.Time      `db:"UPDATED_AT"`
}

// Preference is one row of the append-only preference history.
type Preference struct {
	ID            string    `db:"ID"` // ULID
	UserID        string    `db:"USER_ID"`
	TopicID       string    `db:"TOPIC_ID"`
	TopicName     string    `db:"TOPIC_NAME"`
	Difficulty    string    `db:"DIFFICULTY"`
	EffectiveDate string    `db:"EFFECTIVE_DATE"` // YYYY-MM-DD
	CreatedAt     time.Time `db:"CREATED_AT"`
}

// User is the database row for an account.
type User struct {
	ID           string       `db:"ID"` // ULID
	LoginID      string       `db:"LOGIN_ID"`
	Nickname     string       `db:"NICKNAME"`
	PasswordHash string       `db:"PASSWORD_HASH"`
	Role         string       `db:"ROLE"` // GUEST | MEMBER
	LastLoginAt  sql.NullTime `db:"LAST_LOGIN_AT"`
	CreatedAt    time.Time    `db:"CREATED_AT"`
	UpdatedAt    time.Time    `db:"UPDATED_AT"`
	DeletedAt    sql.NullTime `db:"DELETED_AT"`
}
