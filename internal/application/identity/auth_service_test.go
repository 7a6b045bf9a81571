package identity

import (
	"context"
	"testing"
	"time"

	"github.com/contractmgmt/backend/internal/domain/identity"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/contractmgmt/backend/internal/infrastructure/auth"
	"github.com/contractmgmt/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func newTestAuthService(userRepo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-jwt-signing-32ch",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "contracts-backend-test",
		MaxRefreshCount:        3,
	})
	return NewAuthService(userRepo, jwtService, nil)
}

func TestAuthService_Login(t *testing.T) {
	t.Run("returns a token pair for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		user, err := identity.NewUser("alice", "s3cret-pass", identity.RoleEditor)
		require.NoError(t, err)

		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		result, err := service.Login(context.Background(), LoginInput{
			Username: "alice",
			Password: "s3cret-pass",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "alice", result.User.Username)
		assert.Equal(t, "editor", result.User.Role)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		user, err := identity.NewUser("alice", "s3cret-pass", identity.RoleEditor)
		require.NoError(t, err)

		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		_, err = service.Login(context.Background(), LoginInput{
			Username: "alice",
			Password: "wrong",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects unknown user with the same error as wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		userRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, shared.ErrNotFound)

		_, err := service.Login(context.Background(), LoginInput{
			Username: "nobody",
			Password: "whatever1",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		user, err := identity.NewUser("alice", "s3cret-pass", identity.RoleEditor)
		require.NoError(t, err)
		user.Deactivate()

		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

		_, err = service.Login(context.Background(), LoginInput{
			Username: "alice",
			Password: "s3cret-pass",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("issues a new pair carrying the current role", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		user, err := identity.NewUser("alice", "s3cret-pass", identity.RoleViewer)
		require.NoError(t, err)

		userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		login, err := service.Login(context.Background(), LoginInput{
			Username: "alice",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)

		// promote between login and refresh
		require.NoError(t, user.SetRole(identity.RoleEditor))

		refreshed, err := service.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: login.RefreshToken,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	})

	t.Run("rejects a garbage refresh token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		_, err := service.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: "not.a.token",
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("changes password when the old one matches", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		user, err := identity.NewUser("alice", "original-pass", identity.RoleViewer)
		require.NoError(t, err)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)

		err = service.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "original-pass",
			NewPassword: "replacement-pass",
		})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("replacement-pass"))
	})

	t.Run("rejects a wrong old password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestAuthService(userRepo)

		user, err := identity.NewUser("alice", "original-pass", identity.RoleViewer)
		require.NoError(t, err)

		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		err = service.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrong",
			NewPassword: "replacement-pass",
		})

		require.Error(t, err)
		userRepo.AssertNotCalled(t, "Save")
	})
}
