package domain

// Streak tracks consecutive days with at least one first-time submission.
// It is derived bookkeeping: it only ever changes through Advance, which is
// called exactly when a first (not updating) submission is recorded.
//
// Invariants: CurrentStreak <= MaxStreak, and MaxStreak never decreases.
type Streak struct {
	UserID         string
	CurrentStreak  int
	MaxStreak      int
	LastSolvedDate *Date
}

// NewStreak returns the empty streak for a user who has never submitted.
func NewStreak(userID string) *Streak {
	return &Streak{UserID: userID}
}

// Advance records a first-time submission made on today and reports whether
// the streak changed.
//
//   - Same day as the last advance: no-op. Two first-time submissions for
//     different problems dated the same day must not double count.
//   - Exactly one day after the last advance: the run continues.
//   - Any gap, or no history: the run restarts at 1, never 0.
func (s *Streak) Advance(today Date) bool {
	if s.LastSolvedDate != nil && today.Equal(*s.LastSolvedDate) {
		return false
	}

	if s.LastSolvedDate != nil && today.DaysSince(*s.LastSolvedDate) == 1 {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 1
	}

	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}

	solved := today
	s.LastSolvedDate = &solved
	return true
}
