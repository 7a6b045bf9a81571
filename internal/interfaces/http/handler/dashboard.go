package handler

import (
	appcontract "github.com/contractmgmt/backend/internal/application/contract"
	"github.com/contractmgmt/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the per-contract dashboard and timeline endpoints
type DashboardHandler struct {
	BaseHandler
	service *appcontract.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *appcontract.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Dashboard handles GET /contracts/:id/dashboard. An optional as_of query
// parameter renders the dashboard as of a past date.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	contractID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var asOfReq dto.AsOfRequest
	if err := c.ShouldBindQuery(&asOfReq); err != nil {
		h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
		return
	}

	resp, err := h.service.Dashboard(c.Request.Context(), contractID, asOfReq.ParseAsOf())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Gantt handles GET /contracts/:id/gantt: the contract and its direct
// children as timeline bars
func (h *DashboardHandler) Gantt(c *gin.Context) {
	contractID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	rows, err := h.service.Gantt(c.Request.Context(), contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}
