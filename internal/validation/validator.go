package validation

import (
	"regexp"
	"strings"

	"haru-byte/internal/domain"
)

const maxAnswerLength = 5000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubmitAnswerRequest validates the submit answer request
func (v *Validator) ValidateSubmitAnswerRequest(problemID, answerText string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(problemID) == "" {
		errors = append(errors, domain.NewMissingFieldError("problemID"))
	} else if !isValidULID(problemID) {
		errors = append(errors, domain.NewInvalidFormatError("problemID", problemID))
	}

	if strings.TrimSpace(answerText) == "" {
		errors = append(errors, domain.NewMissingFieldError("userAnswer"))
	} else if len(answerText) > maxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("userAnswer", len(answerText), domain.MinAnswerLength, maxAnswerLength))
	}

	return errors
}

// ValidateProblemID validates a problem ID path parameter
func (v *Validator) ValidateProblemID(problemID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(problemID) == "" {
		errors = append(errors, domain.NewMissingFieldError("problemID"))
	} else if !isValidULID(problemID) {
		errors = append(errors, domain.NewInvalidFormatError("problemID", problemID))
	}

	return errors
}

// ValidateDateParam validates an optional YYYY-MM-DD query parameter
func (v *Validator) ValidateDateParam(date string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if date == "" {
		return errors
	}
	if _, err := domain.ParseDate(date); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("date", date))
	}

	return errors
}

// ValidatePreferenceRequest validates the preference register/update request
func (v *Validator) ValidatePreferenceRequest(topicID, difficulty string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(topicID) == "" {
		errors = append(errors, domain.NewMissingFieldError("topicId"))
	}

	if strings.TrimSpace(difficulty) == "" {
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	} else if !domain.Difficulty(difficulty).IsValid() {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
	}

	return errors
}

// ValidateSignupRequest validates the signup request
func (v *Validator) ValidateSignupRequest(loginID, password, nickname string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(loginID) == "" {
		errors = append(errors, domain.NewMissingFieldError("loginId"))
	} else if !isValidLoginID(loginID) {
		errors = append(errors, domain.NewInvalidFormatError("loginId", loginID))
	}

	if password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(password) < 8 || len(password) > 72 {
		errors = append(errors, domain.NewOutOfRangeError("password", len(password), 8, 72))
	}

	if strings.TrimSpace(nickname) == "" {
		errors = append(errors, domain.NewMissingFieldError("nickname"))
	} else if len(nickname) > 30 {
		errors = append(errors, domain.NewOutOfRangeError("nickname", len(nickname), 1, 30))
	}

	return errors
}

// ValidateLoginRequest validates the login request
func (v *Validator) ValidateLoginRequest(loginID, password string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(loginID) == "" {
		errors = append(errors, domain.NewMissingFieldError("loginId"))
	}
	if password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

var (
	ulidPattern    = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	loginIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)
)

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	return ulidPattern.MatchString(s)
}

// isValidLoginID checks login ID format (alphanumeric, hyphens, underscores)
func isValidLoginID(s string) bool {
	return loginIDPattern.MatchString(s)
}
