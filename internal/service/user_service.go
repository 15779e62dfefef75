package service

import (
	"context"

	"haru-byte/internal/domain"
	"haru-byte/internal/dto"
)

// UserService defines the interface for user profile operations.
type UserService interface {
	GetMe(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// GetMe returns the authenticated user's profile.
func (s *userServiceImpl) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}

	return &dto.UserResponse{
		ID:       user.ID,
		LoginID:  user.LoginID,
		Nickname: user.Nickname,
		Role:     string(user.Role),
	}, nil
}
