package handler

import (
	appcontract "github.com/contractmgmt/backend/internal/application/contract"
	"github.com/gin-gonic/gin"
)

// IncentiveHandler handles commercial incentive HTTP requests
type IncentiveHandler struct {
	BaseHandler
	service *appcontract.IncentiveService
}

// NewIncentiveHandler creates a new incentive handler
func NewIncentiveHandler(service *appcontract.IncentiveService) *IncentiveHandler {
	return &IncentiveHandler{service: service}
}

// Create handles POST /contracts/:id/incentives
func (h *IncentiveHandler) Create(c *gin.Context) {
	contractID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req appcontract.CreateIncentiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), contractID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListByContract handles GET /contracts/:id/incentives
func (h *IncentiveHandler) ListByContract(c *gin.Context) {
	contractID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	incentives, err := h.service.ListByContract(c.Request.Context(), contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, incentives)
}

// Delete handles DELETE /incentives/:id
func (h *IncentiveHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid incentive ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
