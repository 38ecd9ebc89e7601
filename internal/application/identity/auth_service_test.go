package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/identity"
	"github.com/minishop/backend/internal/domain/shared"
	"github.com/minishop/backend/internal/infrastructure/auth"
	"github.com/minishop/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func newAuthService(users *MockUserRepository, blacklist auth.TokenBlacklist) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-unit-tests-only",
		TokenExpiration: time.Hour,
		Issuer:          "minishop-test",
	})
	return NewAuthService(users, jwtService, blacklist, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates customer and returns token", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users, auth.NewInMemoryTokenBlacklist())

		users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
		users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Register(context.Background(), RegisterRequest{
			UserName: "alice",
			Email:    "alice@example.com",
			Password: "secret1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "customer", resp.User.Role)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		users.AssertExpectations(t)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users, auth.NewInMemoryTokenBlacklist())

		users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{
			UserName: "alice",
			Email:    "alice@example.com",
			Password: "secret1",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	newUser := func(t *testing.T) *identity.User {
		u, err := identity.NewUser("alice", "alice@example.com", "secret1", identity.RoleCustomer)
		require.NoError(t, err)
		return u
	}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users, auth.NewInMemoryTokenBlacklist())
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(newUser(t), nil)

		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "secret1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users, auth.NewInMemoryTokenBlacklist())
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(newUser(t), nil)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("unknown email maps to unauthorized", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users, auth.NewInMemoryTokenBlacklist())
		users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "ghost@example.com",
			Password: "secret1",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("disabled account", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users, auth.NewInMemoryTokenBlacklist())
		u := newUser(t)
		u.Deactivate()
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(u, nil)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "secret1",
		})

		assert.ErrorIs(t, err, shared.ErrAccountDisabled)
	})

	t.Run("blocked account", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users, auth.NewInMemoryTokenBlacklist())
		u := newUser(t)
		until := time.Now().Add(time.Hour)
		u.BlockedUntil = &until
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(u, nil)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "secret1",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_BLOCKED", domainErr.Code)
	})

	t.Run("expired block no longer applies", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := newAuthService(users, auth.NewInMemoryTokenBlacklist())
		u := newUser(t)
		until := time.Now().Add(-time.Hour)
		u.BlockedUntil = &until
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(u, nil)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "secret1",
		})

		assert.NoError(t, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	users := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := newAuthService(users, blacklist)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-unit-tests-only",
		TokenExpiration: time.Hour,
		Issuer:          "minishop-test",
	})
	token, err := jwtService.GenerateToken(auth.GenerateTokenInput{UserID: uuid.New(), Role: "customer"})
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token.Value)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))

	blacklisted, err := blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}
