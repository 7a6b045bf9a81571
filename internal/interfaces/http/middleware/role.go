package middleware

import (
	"net/http"

	"github.com/contractmgmt/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
)

// RequireEditor creates middleware that requires a role allowed to modify data
func RequireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		if !role.CanEdit() {
			handleRoleDenied(c, "Write access requires editor or admin role")
			return
		}
		c.Next()
	}
}

// RequireAdmin creates middleware that requires the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity.Role(GetJWTRole(c)) != identity.RoleAdmin {
			handleRoleDenied(c, "Admin role required")
			return
		}
		c.Next()
	}
}

func handleRoleDenied(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": message,
		},
	})
}
