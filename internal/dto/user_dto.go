package dto

import "github.com/golang-jwt/jwt/v5"

// SignupRequest creates a new account.
type SignupRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the payload for GET /users/me.
type UserResponse struct {
	ID       string `json:"id"`
	LoginID  string `json:"loginId"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

// AuthClaims are the JWT claims carried by access and refresh tokens.
type AuthClaims struct {
	UserID    string `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}
