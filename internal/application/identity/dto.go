package identity

import (
	"time"

	"github.com/minishop/backend/internal/domain/identity"
)

// RegisterRequest is the input for user registration
type RegisterRequest struct {
	UserName string `json:"user_name" binding:"required,min=2,max=80"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the input for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID           string     `json:"id"`
	UserName     string     `json:"user_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ToUserResponse converts a user aggregate to its response form
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		UserName:     u.UserName,
		Email:        u.Email,
		Role:         string(u.Role),
		Active:       u.Active,
		BlockedUntil: u.BlockedUntil,
		CreatedAt:    u.CreatedAt,
	}
}
