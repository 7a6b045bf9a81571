package identity

import (
	"strings"
	"time"

	"github.com/contractmgmt/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the access level a user holds over contract records
type Role string

const (
	RoleAdmin  Role = "admin"  // full access including user management
	RoleEditor Role = "editor" // may create and edit contract records
	RoleViewer Role = "viewer" // read-only access to dashboards and records
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

const bcryptCost = 12

// User represents a user of the contract management system
type User struct {
	shared.BaseAggregateRoot
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName  string     `gorm:"type:varchar(200)"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'viewer'"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a hashed password
func NewUser(username, password string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) > 100 {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      string(hash),
		Role:              role,
		Status:            UserStatusActive,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the user's password
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if err := validateRole(role); err != nil {
		return err
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// Deactivate disables the user
func (u *User) Deactivate() {
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
}

// IsActive returns true if the user may log in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// CanEdit returns true if the role allows modifying records
func (r Role) CanEdit() bool {
	return r == RoleAdmin || r == RoleEditor
}

func validateRole(role Role) error {
	switch role {
	case RoleAdmin, RoleEditor, RoleViewer:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Role must be admin, editor or viewer")
	}
}
