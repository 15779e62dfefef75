package service

import (
	"context"

	"haru-byte/internal/domain"
	"haru-byte/internal/dto"
	"haru-byte/internal/logger"
	"haru-byte/internal/util"

	"go.uber.org/zap"
)

// PreferenceService defines the interface for preference operations.
type PreferenceService interface {
	RegisterPreference(ctx context.Context, userID string, req *dto.PreferenceRequest) (*dto.PreferenceResponse, error)
	UpdatePreference(ctx context.Context, userID string, req *dto.PreferenceRequest) (*dto.PreferenceResponse, error)
	GetCategories() *dto.CategoryListResponse
}

type preferenceService struct {
	preferenceRepo domain.PreferenceRepository
	userRepo       domain.UserRepository
	clock          domain.Clock
}

// NewPreferenceService creates a new instance of PreferenceService.
func NewPreferenceService(
	preferenceRepo domain.PreferenceRepository,
	userRepo domain.UserRepository,
	clock domain.Clock,
) PreferenceService {
	return &preferenceService{
		preferenceRepo: preferenceRepo,
		userRepo:       userRepo,
		clock:          clock,
	}
}

// RegisterPreference stores the user's first preference, effective from today
// so the first daily problem can be generated immediately. Registering also
// promotes a GUEST account to MEMBER.
func (s *preferenceService) RegisterPreference(ctx context.Context, userID string, req *dto.PreferenceRequest) (*dto.PreferenceResponse, error) {
	latest, err := s.preferenceRepo.GetLatest(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get latest preference", err)
	}
	if latest != nil {
		return nil, domain.NewInvalidInputError("a preference is already registered; update it instead")
	}

	preference, err := s.buildPreference(userID, req, s.clock.Today())
	if err != nil {
		return nil, err
	}
	if err := s.preferenceRepo.Create(ctx, preference); err != nil {
		return nil, domain.NewInternalError("Failed to create preference", err)
	}

	if err := s.promoteToMember(ctx, userID); err != nil {
		logger.Get().Error("Failed to promote user to member",
			zap.Error(err),
			zap.String("userID", userID))
	}

	return toPreferenceResponse(preference), nil
}

// UpdatePreference appends a new preference row effective from tomorrow.
// Today's problem, if already materialized, keeps the old preference.
func (s *preferenceService) UpdatePreference(ctx context.Context, userID string, req *dto.PreferenceRequest) (*dto.PreferenceResponse, error) {
	latest, err := s.preferenceRepo.GetLatest(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get latest preference", err)
	}
	if latest == nil {
		return nil, domain.NewInvalidInputError("no preference registered yet")
	}

	preference, err := s.buildPreference(userID, req, s.clock.Today().AddDays(1))
	if err != nil {
		return nil, err
	}
	if err := s.preferenceRepo.Create(ctx, preference); err != nil {
		return nil, domain.NewInternalError("Failed to create preference", err)
	}

	return toPreferenceResponse(preference), nil
}

// GetCategories implements PreferenceService.
func (s *preferenceService) GetCategories() *dto.CategoryListResponse {
	topics := make([]dto.TopicResponse, 0, len(domain.Topics))
	for _, t := range domain.Topics {
		topics = append(topics, dto.TopicResponse{ID: t.ID, Name: t.Name})
	}
	return &dto.CategoryListResponse{Topics: topics}
}

func (s *preferenceService) buildPreference(userID string, req *dto.PreferenceRequest, effectiveDate domain.Date) (*domain.Preference, error) {
	topic, ok := domain.TopicByID(req.TopicID)
	if !ok {
		return nil, domain.NewInvalidInputError("unknown topic: " + req.TopicID)
	}

	difficulty := domain.Difficulty(req.Difficulty)
	if !difficulty.IsValid() {
		return nil, domain.NewInvalidInputError("difficulty must be EASY, MEDIUM or HARD")
	}

	preference := domain.NewPreference(userID, topic.ID, topic.Name, difficulty, effectiveDate)
	preference.ID = util.NewULID()
	if err := preference.Validate(); err != nil {
		return nil, err
	}
	return preference, nil
}

func (s *preferenceService) promoteToMember(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.Role != domain.RoleGuest {
		return nil
	}
	return s.userRepo.UpdateRole(ctx, userID, domain.RoleMember)
}

func toPreferenceResponse(p *domain.Preference) *dto.PreferenceResponse {
	return &dto.PreferenceResponse{
		TopicID:       p.TopicID,
		TopicName:     p.TopicName,
		Difficulty:    string(p.Difficulty),
		EffectiveDate: p.EffectiveDate.String(),
	}
}
