package domain

import "time"

// UserRole distinguishes users who have completed preference setup (MEMBER)
// from those who have only signed up (GUEST).
type UserRole string

const (
	RoleGuest  UserRole = "GUEST"
	RoleMember UserRole = "MEMBER"
)

// User represents an account in the system.
type User struct {
	ID           string
	LoginID      string
	Nickname     string
	PasswordHash string
	Role         UserRole
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// NewUser creates a new User with the GUEST role.
func NewUser(loginID, nickname, passwordHash string) *User {
	now := time.Now()
	return &User{
		LoginID:      loginID,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		Role:         RoleGuest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.LoginID == "" {
		return NewInvalidInputError("login ID is required")
	}
	if u.Nickname == "" {
		return NewInvalidInputError("nickname is required")
	}
	if u.PasswordHash == "" {
		return NewInvalidInputError("password hash is required")
	}
	return nil
}
