package service

import (
	"context"
	"errors"
	"time"

	"haru-byte/internal/config"
	"haru-byte/internal/domain"
	"haru-byte/internal/dto"
	"haru-byte/internal/logger"
	"haru-byte/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
	ValidateJWT(tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	userRepo domain.UserRepository
	cfg      config.JWTConfig
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, cfg config.JWTConfig) (AuthService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{userRepo: userRepo, cfg: cfg}, nil
}

// Signup creates a GUEST account and issues a token pair.
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error) {
	existing, err := s.userRepo.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up login ID", err)
	}
	if existing != nil {
		return nil, domain.NewError(domain.CodeDuplicateLoginID, "This login ID is already taken", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	user := domain.NewUser(req.LoginID, req.Nickname, string(hash))
	user.ID = util.NewULID()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.NewInternalError("Failed to create user", err)
	}

	logger.Get().Info("User signed up",
		zap.String("userID", user.ID),
		zap.String("loginID", user.LoginID))
	return s.issueTokenPair(user.ID)
}

// Login verifies credentials and issues a token pair.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.CodeInvalidCredentials, "Invalid login ID or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewError(domain.CodeInvalidCredentials, "Invalid login ID or password", nil)
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Get().Warn("Failed to update last login time",
			zap.Error(err),
			zap.String("userID", user.ID))
	}

	return s.issueTokenPair(user.ID)
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(refreshTokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("Not a refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("User no longer exists")
	}

	return s.issueTokenPair(user.ID)
}

// ValidateJWT parses and verifies a token issued by this service.
func (s *authServiceImpl) ValidateJWT(tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewUnauthorizedError("Token has expired")
		}
		return nil, domain.NewUnauthorizedError("Invalid token")
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, domain.NewUnauthorizedError("Invalid token claims")
	}
	return claims, nil
}

func (s *authServiceImpl) issueTokenPair(userID string) (*dto.TokenResponse, error) {
	accessToken, err := s.createJWT(userID, s.cfg.AccessTokenTTL, TokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.createJWT(userID, s.cfg.RefreshTokenTTL, TokenTypeRefresh)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create refresh token", err)
	}
	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authServiceImpl) createJWT(userID string, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := &dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}
