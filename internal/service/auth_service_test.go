package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"haru-byte/internal/config"
	"haru-byte/internal/domain"
	"haru-byte/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:       "test-secret-key-for-unit-tests",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService(new(MockUserRepository), config.JWTConfig{})
	assert.Error(t, err)
}

func TestSignupIssuesTokenPair(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, err := NewAuthService(userRepo, testJWTConfig())
	assert.NoError(t, err)

	userRepo.On("GetByLoginID", mock.Anything, "hana").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		if u.LoginID != "hana" || u.Nickname != "Hana" || u.Role != domain.RoleGuest || u.ID == "" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pw")) == nil
	})).Return(nil)

	resp, err := svc.Signup(context.Background(), &dto.SignupRequest{
		LoginID:  "hana",
		Password: "secret-pw",
		Nickname: "Hana",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)

	userRepo.AssertExpectations(t)
}

func TestSignupRejectsDuplicateLoginID(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByLoginID", mock.Anything, "hana").Return(&domain.User{ID: "user1", LoginID: "hana"}, nil)

	_, err := svc.Signup(context.Background(), &dto.SignupRequest{
		LoginID:  "hana",
		Password: "secret-pw",
		Nickname: "Hana",
	})
	assert.Error(t, err)

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeDuplicateLoginID, domainErr.Code)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginVerifiesPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := NewAuthService(userRepo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pw"), bcrypt.MinCost)
	user := &domain.User{ID: "user1", LoginID: "hana", PasswordHash: string(hash)}

	userRepo.On("GetByLoginID", mock.Anything, "hana").Return(user, nil)
	userRepo.On("TouchLastLogin", mock.Anything, "user1").Return(nil)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "hana", Password: "secret-pw"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := svc.ValidateJWT(resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	userRepo.AssertExpectations(t)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := NewAuthService(userRepo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pw"), bcrypt.MinCost)
	user := &domain.User{ID: "user1", LoginID: "hana", PasswordHash: string(hash)}
	userRepo.On("GetByLoginID", mock.Anything, "hana").Return(user, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "hana", Password: "wrong"})
	assert.Error(t, err)

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidCredentials, domainErr.Code)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByLoginID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "ghost", Password: "whatever"})
	assert.Error(t, err)

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidCredentials, domainErr.Code)
}

func TestRefreshTokenRotatesPair(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := NewAuthService(userRepo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pw"), bcrypt.MinCost)
	user := &domain.User{ID: "user1", LoginID: "hana", PasswordHash: string(hash)}
	userRepo.On("GetByLoginID", mock.Anything, "hana").Return(user, nil)
	userRepo.On("TouchLastLogin", mock.Anything, "user1").Return(nil)
	userRepo.On("GetByID", mock.Anything, "user1").Return(user, nil)

	pair, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "hana", Password: "secret-pw"})
	assert.NoError(t, err)

	fresh, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	claims, err := svc.ValidateJWT(fresh.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, _ := NewAuthService(userRepo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pw"), bcrypt.MinCost)
	user := &domain.User{ID: "user1", LoginID: "hana", PasswordHash: string(hash)}
	userRepo.On("GetByLoginID", mock.Anything, "hana").Return(user, nil)
	userRepo.On("TouchLastLogin", mock.Anything, "user1").Return(nil)

	pair, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "hana", Password: "secret-pw"})
	assert.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	svc, _ := NewAuthService(new(MockUserRepository), testJWTConfig())

	_, err := svc.ValidateJWT("not-a-token")
	assert.Error(t, err)

	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
}

func TestValidateJWTRejectsForeignSignature(t *testing.T) {
	svcA, _ := NewAuthService(new(MockUserRepository), testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.SecretKey = "a-completely-different-secret"
	userRepo := new(MockUserRepository)
	svcB, _ := NewAuthService(userRepo, otherCfg)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pw"), bcrypt.MinCost)
	user := &domain.User{ID: "user1", LoginID: "hana", PasswordHash: string(hash)}
	userRepo.On("GetByLoginID", mock.Anything, "hana").Return(user, nil)
	userRepo.On("TouchLastLogin", mock.Anything, "user1").Return(nil)

	pair, err := svcB.Login(context.Background(), &dto.LoginRequest{LoginID: "hana", Password: "secret-pw"})
	assert.NoError(t, err)

	_, err = svcA.ValidateJWT(pair.AccessToken)
	assert.Error(t, err)
}

func TestGetMe(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	user := &domain.User{ID: "user1", LoginID: "hana", Nickname: "Hana", Role: domain.RoleMember}
	userRepo.On("GetByID", mock.Anything, "user1").Return(user, nil)

	resp, err := svc.GetMe(context.Background(), "user1")
	assert.NoError(t, err)
	assert.Equal(t, "hana", resp.LoginID)
	assert.Equal(t, "MEMBER", resp.Role)
}

func TestGetMeNotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.GetMe(context.Background(), "ghost")
	assert.Error(t, err)
}
