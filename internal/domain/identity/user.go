package identity

import (
	"strings"
	"time"

	"github.com/minishop/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user role
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// IsValid returns true if the role is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// Password cost for bcrypt
const bcryptCost = 12

// Cancellation abuse thresholds and windows
const (
	cancelWindow24h    = 24 * time.Hour
	cancelWindow7d     = 7 * 24 * time.Hour
	cancelThreshold24h = 3
	cancelThreshold7d  = 5
)

// User represents an account with credentials, a role, and the
// cancellation-abuse counters maintained by the fraud governor.
type User struct {
	shared.BaseAggregateRoot
	UserName     string `gorm:"type:varchar(80);not null"`
	Email        string `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'customer';index"`
	Active       bool   `gorm:"not null;default:true"`

	// Fraud / cancellation protection. Mutated only through RecordCancellation.
	BlockedUntil   *time.Time
	CancelCount24h int `gorm:"not null;default:0"`
	CancelCount7d  int `gorm:"not null;default:0"`
	LastCancelAt   *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with a hashed password
func NewUser(userName, email, password string, role Role) (*User, error) {
	if err := validateUserName(userName); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		role = RoleCustomer
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserName:          strings.TrimSpace(userName),
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		Active:            true,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsBlocked returns true if a fraud block is active at the given time
func (u *User) IsBlocked(now time.Time) bool {
	return u.BlockedUntil != nil && u.BlockedUntil.After(now)
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RecordCancellation applies the sliding-window abuse policy for a single
// order cancellation at the given time.
//
// Each counter resets to zero when the previous cancellation falls outside
// its window, then both are incremented and LastCancelAt is stamped. If the
// 24h counter reaches its threshold the account is blocked for 24 hours;
// otherwise, if the 7d counter reaches its threshold, for 7 days. An existing
// block expiry is overwritten, not extended.
func (u *User) RecordCancellation(now time.Time) {
	if u.LastCancelAt == nil || now.Sub(*u.LastCancelAt) > cancelWindow24h {
		u.CancelCount24h = 0
	}
	if u.LastCancelAt == nil || now.Sub(*u.LastCancelAt) > cancelWindow7d {
		u.CancelCount7d = 0
	}

	u.CancelCount24h++
	u.CancelCount7d++
	last := now
	u.LastCancelAt = &last

	if u.CancelCount24h >= cancelThreshold24h {
		until := now.Add(cancelWindow24h)
		u.BlockedUntil = &until
	} else if u.CancelCount7d >= cancelThreshold7d {
		until := now.Add(cancelWindow7d)
		u.BlockedUntil = &until
	}

	u.UpdatedAt = now
	u.IncrementVersion()
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateUserName(userName string) error {
	userName = strings.TrimSpace(userName)
	if len(userName) < 2 {
		return shared.NewDomainError("INVALID_USERNAME", "User name must be at least 2 characters")
	}
	if len(userName) > 80 {
		return shared.NewDomainError("INVALID_USERNAME", "User name cannot exceed 80 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is malformed")
	}
	if len(email) > 254 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 254 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
