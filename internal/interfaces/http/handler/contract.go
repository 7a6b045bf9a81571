package handler

import (
	appcontract "github.com/contractmgmt/backend/internal/application/contract"
	"github.com/contractmgmt/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContractHandler handles contract-related HTTP requests
type ContractHandler struct {
	BaseHandler
	service *appcontract.ContractService
}

// NewContractHandler creates a new contract handler
func NewContractHandler(service *appcontract.ContractService) *ContractHandler {
	return &ContractHandler{service: service}
}

// Create handles POST /contracts
func (h *ContractHandler) Create(c *gin.Context) {
	var req appcontract.CreateContractRequest
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

// GetByID handles GET /contracts/:id. The response carries the derived
// state: current entities, current scopes and the effective expiry date.
func (h *ContractHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /contracts
func (h *ContractHandler) List(c *gin.Context) {
	var filter appcontract.ContractListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	contracts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, contracts, total, page, pageSize)
}

// Update handles PUT /contracts/:id
func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req appcontract.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete handles DELETE /contracts/:id
func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Link handles POST /contracts/:id/children
func (h *ContractHandler) Link(c *gin.Context) {
	parentID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req appcontract.LinkContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Link(c.Request.Context(), parentID, req.ChildID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Unlink handles DELETE /contracts/:id/children/:child_id
func (h *ContractHandler) Unlink(c *gin.Context) {
	parentID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}
	childID, err := uuid.Parse(c.Param("child_id"))
	if err != nil {
		h.BadRequest(c, "Invalid child contract ID")
		return
	}

	if err := h.service.Unlink(c.Request.Context(), parentID, childID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Children handles GET /contracts/:id/children
func (h *ContractHandler) Children(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	children, err := h.service.Children(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, children)
}

// CurrentEntities handles GET /contracts/:id/entities
func (h *ContractHandler) CurrentEntities(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	ids, err := h.service.CurrentEntities(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"entity_ids": ids})
}

// CurrentScopes handles GET /contracts/:id/scopes
func (h *ContractHandler) CurrentScopes(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	ids, err := h.service.CurrentScopes(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"scope_ids": ids})
}

// ExpiryDate handles GET /contracts/:id/expiry-date. An optional as_of query
// parameter resolves the expiry as of a past date.
func (h *ContractHandler) ExpiryDate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var asOfReq dto.AsOfRequest
	if err := c.ShouldBindQuery(&asOfReq); err != nil {
		h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
		return
	}

	expiry, err := h.service.ExpiryDateAsOf(c.Request.Context(), id, asOfReq.ParseAsOf())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"expiry_date": expiry})
}

// AddAmendment handles POST /contracts/:id/amendments
func (h *ContractHandler) AddAmendment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	var req appcontract.CreateAmendmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.AddAmendment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ListAmendments handles GET /contracts/:id/amendments
func (h *ContractHandler) ListAmendments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contract ID")
		return
	}

	amendments, err := h.service.ListAmendments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, amendments)
}

// DeleteAmendment handles DELETE /amendments/:id
func (h *ContractHandler) DeleteAmendment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid amendment ID")
		return
	}

	if err := h.service.DeleteAmendment(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
