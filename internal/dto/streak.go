package dto

// StreakResponse is the payload for GET /streaks.
type StreakResponse struct {
	CurrentStreak  int     `json:"currentStreak"`
	MaxStreak      int     `json:"maxStreak"`
	LastSolvedDate *string `json:"lastSolvedDate"`
}
