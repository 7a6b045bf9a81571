package handler

import (
	appcontract "github.com/contractmgmt/backend/internal/application/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/contractmgmt/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ScopeHandler handles scope-related HTTP requests
type ScopeHandler struct {
	BaseHandler
	service *appcontract.ScopeService
}

// NewScopeHandler creates a new scope handler
func NewScopeHandler(service *appcontract.ScopeService) *ScopeHandler {
	return &ScopeHandler{service: service}
}

// Create handles POST /scopes
func (h *ScopeHandler) Create(c *gin.Context) {
	var req appcontract.CreateScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID handles GET /scopes/:id
func (h *ScopeHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /scopes
func (h *ScopeHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	scopes, err := h.service.List(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scopes)
}

// Delete handles DELETE /scopes/:id
func (h *ScopeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddEdge handles POST /scopes/:id/children
func (h *ScopeHandler) AddEdge(c *gin.Context) {
	parentID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	var req appcontract.ScopeEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.AddEdge(c.Request.Context(), parentID, req.ChildID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveEdge handles DELETE /scopes/:id/children/:child_id
func (h *ScopeHandler) RemoveEdge(c *gin.Context) {
	parentID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid scope ID")
		return
	}
	childID, err := uuid.Parse(c.Param("child_id"))
	if err != nil {
		h.BadRequest(c, "Invalid child scope ID")
		return
	}

	if err := h.service.RemoveEdge(c.Request.Context(), parentID, childID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Ancestors handles GET /scopes/:id/ancestors
func (h *ScopeHandler) Ancestors(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	scopes, err := h.service.Ancestors(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scopes)
}

// Descendants handles GET /scopes/:id/descendants
func (h *ScopeHandler) Descendants(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	scopes, err := h.service.Descendants(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, scopes)
}

// Contracts handles GET /scopes/:id/contracts: contracts whose current scope
// set intersects this scope's closure
func (h *ScopeHandler) Contracts(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid scope ID")
		return
	}

	contracts, err := h.service.Contracts(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contracts)
}
