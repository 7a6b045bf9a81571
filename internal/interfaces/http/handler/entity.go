package handler

import (
	appcontract "github.com/contractmgmt/backend/internal/application/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/contractmgmt/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EntityHandler handles legal entity HTTP requests
type EntityHandler struct {
	BaseHandler
	service *appcontract.EntityService
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(service *appcontract.EntityService) *EntityHandler {
	return &EntityHandler{service: service}
}

// Create handles POST /entities
func (h *EntityHandler) Create(c *gin.Context) {
	var req appcontract.CreateEntityRequest
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

// GetByID handles GET /entities/:id
func (h *EntityHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /entities. An optional group_id query parameter restricts
// the listing to one entity group.
func (h *EntityHandler) List(c *gin.Context) {
	if groupIDStr := c.Query("group_id"); groupIDStr != "" {
		groupID, err := uuid.Parse(groupIDStr)
		if err != nil {
			h.BadRequest(c, "Invalid group ID")
			return
		}
		entities, err := h.service.ListByGroup(c.Request.Context(), groupID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, entities)
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	entities, err := h.service.List(c.Request.Context(), shared.Filter{
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

	h.Success(c, entities)
}

// Delete handles DELETE /entities/:id
func (h *EntityHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateGroup handles POST /entity-groups
func (h *EntityHandler) CreateGroup(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=1,max=200"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.service.CreateGroup(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, group)
}

// ListGroups handles GET /entity-groups
func (h *EntityHandler) ListGroups(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	groups, err := h.service.ListGroups(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, groups)
}
