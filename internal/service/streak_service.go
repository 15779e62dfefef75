package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"haru-byte/internal/cache"
	"haru-byte/internal/domain"
	"haru-byte/internal/dto"
	"haru-byte/internal/logger"

	"go.uber.org/zap"
)

const streakCacheTTL = 10 * time.Minute

// StreakService defines the interface for streak reads and cache maintenance.
type StreakService interface {
	GetStreak(ctx context.Context, userID string) (*dto.StreakResponse, error)
	InvalidateStreakCache(ctx context.Context, userID string) error
}

type streakService struct {
	streakRepo domain.StreakRepository
	cache      domain.Cache
}

// NewStreakService creates a new instance of StreakService. The cache may be
// nil, in which case every read goes to the repository.
func NewStreakService(streakRepo domain.StreakRepository, cacheClient domain.Cache) StreakService {
	return &streakService{streakRepo: streakRepo, cache: cacheClient}
}

// GetStreak implements StreakService.
func (s *streakService) GetStreak(ctx context.Context, userID string) (*dto.StreakResponse, error) {
	cacheKey := cache.GenerateCacheKey("streak", "user", userID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil {
			var resp dto.StreakResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &resp); unmarshalErr == nil {
				return &resp, nil
			}
			logger.Get().Warn("Failed to unmarshal cached streak, falling back to repository",
				zap.String("userID", userID))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Error("Failed to read streak from cache",
				zap.Error(err),
				zap.String("userID", userID))
		}
	}

	streak, err := s.streakRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get streak", err)
	}

	resp := &dto.StreakResponse{
		CurrentStreak: streak.CurrentStreak,
		MaxStreak:     streak.MaxStreak,
	}
	if streak.LastSolvedDate != nil {
		lastSolved := streak.LastSolvedDate.String()
		resp.LastSolvedDate = &lastSolved
	}

	if s.cache != nil {
		if data, marshalErr := json.Marshal(resp); marshalErr == nil {
			if setErr := s.cache.Set(ctx, cacheKey, string(data), streakCacheTTL); setErr != nil {
				logger.Get().Warn("Failed to cache streak",
					zap.Error(setErr),
					zap.String("userID", userID))
			}
		}
	}

	return resp, nil
}

// InvalidateStreakCache implements StreakService.
func (s *streakService) InvalidateStreakCache(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, cache.GenerateCacheKey("streak", "user", userID))
}
