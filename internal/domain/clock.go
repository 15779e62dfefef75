package domain

import "time"

// Clock supplies "now" and "today" in a single consistent timezone. The
// environment configures the local-day definition once; the rest of the code
// never reaches for time.Now directly when day boundaries matter.
type Clock interface {
	Now() time.Time
	Today() Date
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a Clock bound to the given location.
func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *systemClock) Today() Date {
	return DateOf(c.Now())
}
