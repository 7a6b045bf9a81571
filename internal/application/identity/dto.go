package identity

import (
	"time"

	"github.com/contractmgmt/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginInput contains credentials for a login attempt
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is returned on successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshTokenInput contains the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResult is returned on successful token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ChangePasswordInput contains a password change request
type ChangePasswordInput struct {
	UserID      uuid.UUID `json:"-"`
	OldPassword string    `json:"old_password" binding:"required"`
	NewPassword string    `json:"new_password" binding:"required,min=8"`
}

// UserInfo is the user payload embedded in auth responses
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=1,max=100"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required,oneof=admin editor viewer"`
}

// SetRoleRequest changes a user's role
type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin editor viewer"`
}

// ToUserInfo converts a domain user to the auth response payload
func ToUserInfo(u *identity.User) UserInfo {
	displayName := u.DisplayName
	if displayName == "" {
		displayName = u.Username
	}
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: displayName,
		Role:        string(u.Role),
		LastLoginAt: u.LastLoginAt,
	}
}
