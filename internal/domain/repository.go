package domain

import "context"

// ProblemRepository persists daily problems keyed by (user, assigned date).
type ProblemRepository interface {
	// CreateIfAbsent inserts the problem unless one already exists for
	// (UserID, AssignedDate). It returns the stored problem for that date,
	// which is the existing one when the insert lost the race.
	CreateIfAbsent(ctx context.Context, problem *Problem) (*Problem, error)
	GetByUserAndDate(ctx context.Context, userID string, date Date) (*Problem, error)
	GetByID(ctx context.Context, problemID string) (*Problem, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Problem, int, error)
}

// SubmissionRepository persists submissions, at most one per problem.
type SubmissionRepository interface {
	FindByProblemID(ctx context.Context, problemID string) (*Submission, error)
	// Upsert inserts the submission, or replaces AnswerText/SubmittedAt of
	// the existing record for the same problem.
	Upsert(ctx context.Context, submission *Submission) error
	ListByUser(ctx context.Context, userID string) ([]*Submission, error)
}

// StreakRepository persists one streak row per user.
type StreakRepository interface {
	// GetByUserID returns the stored streak, or a zero-value streak when the
	// user has never submitted.
	GetByUserID(ctx context.Context, userID string) (*Streak, error)
	Save(ctx context.Context, streak *Streak) error
}

// PreferenceRepository persists the append-only preference history.
type PreferenceRepository interface {
	Create(ctx context.Context, preference *Preference) error
	// GetEffectiveForDate returns the newest preference whose effective date
	// is on or before the given date, or nil when none applies.
	GetEffectiveForDate(ctx context.Context, userID string, date Date) (*Preference, error)
	GetLatest(ctx context.Context, userID string) (*Preference, error)
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByLoginID(ctx context.Context, loginID string) (*User, error)
	GetByID(ctx context.Context, userID string) (*User, error)
	UpdateRole(ctx context.Context, userID string, role UserRole) error
	TouchLastLogin(ctx context.Context, userID string) error
}
