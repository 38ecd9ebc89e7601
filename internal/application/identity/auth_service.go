package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/minishop/backend/internal/domain/identity"
	"github.com/minishop/backend/internal/domain/shared"
	"github.com/minishop/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles registration, login, and session invalidation
type AuthService struct {
	users     identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, jwt *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwt:       jwt,
		blacklist: blacklist,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a new customer account and returns a signed token.
// Self-registration always yields the customer role; admin accounts are
// provisioned out of band.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email already registered")
	}

	user, err := identity.NewUser(req.UserName, req.Email, req.Password, identity.RoleCustomer)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return s.issueToken(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	if !user.Active {
		return nil, shared.ErrAccountDisabled
	}

	if user.IsBlocked(s.now()) {
		return nil, shared.NewDomainError("ACCOUNT_BLOCKED",
			"Account is blocked until "+user.BlockedUntil.UTC().Format(time.RFC3339))
	}

	return s.issueToken(user)
}

// Logout revokes the presented token by blacklisting its JTI for the
// remainder of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		return err
	}

	s.logger.Info("user logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Me returns the profile of the given user
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		UserName: user.UserName,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:     token.Value,
		TokenType: token.TokenType,
		ExpiresAt: token.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}
