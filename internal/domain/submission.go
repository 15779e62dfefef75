package domain

import (
	"strings"
	"time"
)

// MinAnswerLength is the minimum trimmed length of an answer.
const MinAnswerLength = 5

// Submission is a user's answer to one daily problem. At most one submission
// exists per problem; a resubmission replaces AnswerText and SubmittedAt in
// place and never creates a second record.
type Submission struct {
	ID          string
	UserID      string
	ProblemID   string
	AnswerText  string
	SubmittedAt time.Time
	IsOnTime    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSubmission creates a new Submission instance
func NewSubmission(userID, problemID, answerText string, submittedAt time.Time) *Submission {
	return &Submission{
		UserID:      userID,
		ProblemID:   problemID,
		AnswerText:  answerText,
		SubmittedAt: submittedAt,
		CreatedAt:   submittedAt,
		UpdatedAt:   submittedAt,
	}
}

// Validate validates the submission
func (s *Submission) Validate() error {
	if s.ProblemID == "" {
		return NewInvalidInputError("problem ID is required")
	}
	if s.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if len(strings.TrimSpace(s.AnswerText)) < MinAnswerLength {
		return NewAnswerTooShortError(MinAnswerLength)
	}
	return nil
}

// OnTimePolicy decides whether a submission for a problem assigned to a
// given date counts as on time. The cutoff is the end of the assigned day
// plus a configurable grace period.
type OnTimePolicy struct {
	Location *time.Location
	Grace    time.Duration
}

// IsOnTime reports whether submittedAt falls before the cutoff for
// assignedDate.
func (p OnTimePolicy) IsOnTime(assignedDate Date, submittedAt time.Time) bool {
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	cutoff := assignedDate.EndOfDay(loc).Add(p.Grace)
	return submittedAt.Before(cutoff)
}
