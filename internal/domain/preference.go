package domain

import "time"

// Preference is a user's chosen topic and difficulty for future problem
// generation. Preferences are append-only: a change is stored as a new row
// effective from the next calendar day, so the problem already materialized
// for today is never regenerated retroactively.
type Preference struct {
	ID            string
	UserID        string
	TopicID       string
	TopicName     string
	Difficulty    Difficulty
	EffectiveDate Date
	CreatedAt     time.Time
}

// NewPreference creates a new Preference instance
func NewPreference(userID, topicID, topicName string, difficulty Difficulty, effectiveDate Date) *Preference {
	return &Preference{
		UserID:        userID,
		TopicID:       topicID,
		TopicName:     topicName,
		Difficulty:    difficulty,
		EffectiveDate: effectiveDate,
		CreatedAt:     time.Now(),
	}
}

// Validate validates the preference
func (p *Preference) Validate() error {
	if p.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if p.TopicID == "" {
		return NewInvalidInputError("topic ID is required")
	}
	if !p.Difficulty.IsValid() {
		return NewInvalidInputError("difficulty must be EASY, MEDIUM or HARD")
	}
	if p.EffectiveDate.IsZero() {
		return NewInvalidInputError("effective date is required")
	}
	return nil
}

// Topic is an entry of the static topic catalogue users pick from.
type Topic struct {
	ID   string
	Name string
}

// Topics is the catalogue offered during preference setup.
var Topics = []Topic{
	{ID: "t1", Name: "JavaScript"},
	{ID: "t2", Name: "React.js"},
	{ID: "t3", Name: "Database"},
	{ID: "t4", Name: "Operating Systems"},
	{ID: "t5", Name: "Networking"},
	{ID: "t6", Name: "Data Structures"},
	{ID: "t7", Name: "Algorithms"},
}

// TopicByID looks up a catalogue topic. The second return value reports
// whether the topic exists.
func TopicByID(id string) (Topic, bool) {
	for _, t := range Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}
