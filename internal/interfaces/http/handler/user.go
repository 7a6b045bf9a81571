package handler

import (
	appidentity "github.com/contractmgmt/backend/internal/application/identity"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/contractmgmt/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user administration HTTP requests
type UserHandler struct {
	BaseHandler
	service *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *appidentity.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req appidentity.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, info)
}

// GetByID handles GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	info, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	users, err := h.service.List(c.Request.Context(), shared.Filter{
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

	h.Success(c, users)
}

// SetRole handles PUT /users/:id/role
func (h *UserHandler) SetRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req appidentity.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Role must be one of admin, editor, viewer")
		return
	}

	info, err := h.service.SetRole(c.Request.Context(), id, req.Role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Deactivate handles POST /users/:id/deactivate
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
