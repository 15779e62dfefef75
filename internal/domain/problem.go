package domain

import (
	"strings"
	"time"
)

// Difficulty classifies a daily problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty normalizes a difficulty string. Unknown values fall back
// to MEDIUM, mirroring the generation default.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EASY":
		return DifficultyEasy
	case "MEDIUM":
		return DifficultyMedium
	case "HARD":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// IsValid reports whether d is one of the known difficulty levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Problem is the single learning problem assigned to one user for one
// calendar date. Exactly one problem exists per (UserID, AssignedDate);
// it is created once and immutable afterwards.
type Problem struct {
	ID           string
	UserID       string
	Title        string
	Description  string
	ModelAnswer  string
	Topic        string
	Difficulty   Difficulty
	AssignedDate Date
	IsFallback   bool
	CreatedAt    time.Time
}

// NewProblem creates a new Problem instance
func NewProblem(userID, title, description, modelAnswer, topic string, difficulty Difficulty, assignedDate Date) *Problem {
	return &Problem{
		UserID:       userID,
		Title:        title,
		Description:  description,
		ModelAnswer:  modelAnswer,
		Topic:        topic,
		Difficulty:   difficulty,
		AssignedDate: assignedDate,
		CreatedAt:    time.Now(),
	}
}

// Validate validates the problem
func (p *Problem) Validate() error {
	if p.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if p.Title == "" {
		return NewInvalidInputError("title is required")
	}
	if p.Description == "" {
		return NewInvalidInputError("description is required")
	}
	if !p.Difficulty.IsValid() {
		return NewInvalidInputError("difficulty must be EASY, MEDIUM or HARD")
	}
	if p.AssignedDate.IsZero() {
		return NewInvalidInputError("assigned date is required")
	}
	return nil
}

// GeneratedProblem is the content produced by a ProblemGenerator before it
// is stamped with an owner and an assigned date.
type GeneratedProblem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ModelAnswer string `json:"model_answer"`
}

// FallbackProblem returns generic problem content for the given topic. It is
// persisted in place of generated content when the LLM backend fails, so a
// requested date always yields some problem.
func FallbackProblem(topic string) *GeneratedProblem {
	return &GeneratedProblem{
		Title:       topic + " fundamentals",
		Description: "Explain the core concepts of " + topic + " and why they matter in software development. Give a short example.",
		ModelAnswer: "A strong answer names the key abstractions of " + topic + ", explains the trade-offs they address, and illustrates them with a concrete example.",
	}
}
