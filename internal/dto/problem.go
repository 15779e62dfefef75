package dto

// TodayProblemResponse is the payload for GET /daily-problem/today.
type TodayProblemResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	AssignedDate string `json:"assignedDate"`
	IsSolved     bool   `json:"isSolved"`
}

// ProblemDetailResponse is the payload for GET /daily-problem/:problemID.
// ModelAnswer and the submission fields are only populated once the user has
// submitted an answer.
type ProblemDetailResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Topic        string  `json:"topic"`
	Difficulty   string  `json:"difficulty"`
	AssignedDate string  `json:"assignedDate"`
	UserAnswer   *string `json:"userAnswer,omitempty"`
	SubmittedAt  *string `json:"submittedAt,omitempty"`
	ModelAnswer  *string `json:"aiAnswer,omitempty"`
}

// SubmitAnswerRequest is the payload for POST /daily-problem/:problemID/submissions.
type SubmitAnswerRequest struct {
	AnswerText string `json:"userAnswer"`
}

// SubmissionResponse is returned after a successful submit or resubmit.
type SubmissionResponse struct {
	SubmissionID string `json:"submissionId"`
	ProblemID    string `json:"problemId"`
	AnswerText   string `json:"userAnswer"`
	SubmittedAt  string `json:"submittedAt"`
	IsOnTime     bool   `json:"isOnTime"`
	ModelAnswer  string `json:"aiAnswer"`
}

// ProblemHistoryItem is one entry of the problem history listing.
type ProblemHistoryItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	AssignedDate string `json:"assignedDate"`
	IsSolved     bool   `json:"isSolved"`
}

// ProblemHistoryResponse is the payload for GET /daily-problem/history.
type ProblemHistoryResponse struct {
	Items []ProblemHistoryItem `json:"items"`
	Total int                  `json:"total"`
}

// Pagination carries limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

// ErrorResponse is the minimal error payload used by handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}
