package handler

import (
	appidentity "github.com/contractmgmt/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	BaseHandler
	service *appidentity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input appidentity.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Username and password are required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RefreshToken handles POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input appidentity.RefreshTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Refresh token is required")
		return
	}

	result, err := h.service.RefreshToken(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var input appidentity.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Old and new passwords are required, new password must be at least 8 characters")
		return
	}
	input.UserID = userID

	if err := h.service.ChangePassword(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
