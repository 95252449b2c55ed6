package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"passdesk/internal/config"
	"passdesk/internal/domain"
	"passdesk/internal/service"
	"passdesk/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-do-not-use-in-prod",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "passdesk-test",
	}
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Username:     "operator1",
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "operator1").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator1",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "operator1", claims.Username)
	assert.Equal(t, domain.RoleMember, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "operator1").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator1",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "ghost",
		Password: "does-not-matter",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := activeUser(t, "correct-password")
	user.IsActive = false
	userRepo.On("GetByUsername", mock.Anything, "operator1").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator1",
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestRefreshToken_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "operator1").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator1",
		Password: "correct-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "operator1").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator1",
		Password: "correct-password",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), testJWTConfig())

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "operator1").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator1",
		Password: "correct-password",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
