package handler

import (
	"time"

	"github.com/contractmgmt/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// SystemHandler exposes health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *persistence.Database, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// Health handles GET /health. It reports liveness only and never touches
// the database.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"version": h.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready and verifies database connectivity
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		h.Error(c, 503, "SERVICE_UNAVAILABLE", "Database is not reachable")
		return
	}

	h.Success(c, gin.H{
		"status":  "ready",
		"version": h.version,
	})
}
