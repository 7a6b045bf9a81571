package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRoleRouter(mw gin.HandlerFunc, role string) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Set(JWTRoleKey, role)
		}
		c.Next()
	})
	r.Use(mw)
	r.POST("/resource", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func TestRequireEditor(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin allowed", "admin", http.StatusCreated},
		{"editor allowed", "editor", http.StatusCreated},
		{"viewer denied", "viewer", http.StatusForbidden},
		{"missing role denied", "", http.StatusForbidden},
		{"unknown role denied", "superuser", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRoleRouter(RequireEditor(), tt.role)
			req := httptest.NewRequest("POST", "/resource", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "FORBIDDEN")
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin allowed", "admin", http.StatusCreated},
		{"editor denied", "editor", http.StatusForbidden},
		{"viewer denied", "viewer", http.StatusForbidden},
		{"missing role denied", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRoleRouter(RequireAdmin(), tt.role)
			req := httptest.NewRequest("POST", "/resource", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
