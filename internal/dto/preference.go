package dto

// PreferenceRequest registers or updates a learning preference.
type PreferenceRequest struct {
	TopicID    string `json:"topicId"`
	Difficulty string `json:"difficulty"`
}

// PreferenceResponse describes the stored preference and when it applies.
type PreferenceResponse struct {
	TopicID       string `json:"topicId"`
	TopicName     string `json:"topicName"`
	Difficulty    string `json:"difficulty"`
	EffectiveDate string `json:"effectiveDate"`
}

// TopicResponse is one entry of the topic catalogue.
type TopicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryListResponse is the payload for GET /categories.
type CategoryListResponse struct {
	Topics []TopicResponse `json:"topics"`
}
