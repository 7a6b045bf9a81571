package contract

import (
	"time"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Contract DTOs
// =============================================================================

// CreateContractRequest represents a request to create a new contract
type CreateContractRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	FullName    string `json:"full_name" binding:"max=500"`
	ExternalRef string `json:"external_ref" binding:"max=100"`
	Remarks     string `json:"remarks"`
}

// UpdateContractRequest represents a request to update a contract
type UpdateContractRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	FullName    *string `json:"full_name" binding:"omitempty,max=500"`
	ExternalRef *string `json:"external_ref" binding:"omitempty,max=100"`
	Remarks     *string `json:"remarks"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	ExternalRef   string     `json:"external_ref"`
	Remarks       string     `json:"remarks"`
	EffectiveDate *time.Time `json:"effective_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ContractDetailResponse is a contract together with its derived state
type ContractDetailResponse struct {
	ContractResponse
	ExpiryDate *time.Time          `json:"expiry_date"`
	Entities   []uuid.UUID         `json:"entity_ids"`
	Scopes     []uuid.UUID         `json:"scope_ids"`
	Amendments []AmendmentResponse `json:"amendments"`
}

// ContractListFilter represents filter options for contract list
type ContractListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LinkContractRequest links a child contract under a parent
type LinkContractRequest struct {
	ChildID uuid.UUID `json:"child_id" binding:"required"`
}

// ToContractResponse converts a domain contract to a response DTO
func ToContractResponse(c *contract.Contract) ContractResponse {
	return ContractResponse{
		ID:            c.ID,
		Name:          c.Name,
		FullName:      c.FullName,
		ExternalRef:   c.ExternalRef,
		Remarks:       c.Remarks,
		EffectiveDate: c.EarliestEffectiveDate(),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToContractResponses converts a slice of contracts to response DTOs
func ToContractResponses(contracts []contract.Contract) []ContractResponse {
	responses := make([]ContractResponse, len(contracts))
	for i := range contracts {
		responses[i] = ToContractResponse(&contracts[i])
	}
	return responses
}

// =============================================================================
// Amendment and clause DTOs
// =============================================================================

// CreateAmendmentRequest represents a request to add an amendment
type CreateAmendmentRequest struct {
	Name          string                `json:"name" binding:"required,min=1,max=200"`
	FullName      string                `json:"full_name" binding:"max=500"`
	SignDate      time.Time             `json:"sign_date" binding:"required" time_format:"2006-01-02"`
	EffectiveDate time.Time             `json:"effective_date" binding:"required" time_format:"2006-01-02"`
	Remarks       string                `json:"remarks"`
	Clauses       []CreateClauseRequest `json:"clauses" binding:"dive"`
}

// CreateClauseRequest represents one clause within an amendment
type CreateClauseRequest struct {
	Kind             string     `json:"kind" binding:"required"`
	Pos              string     `json:"pos" binding:"omitempty,oneof=mainbody annex appendix"`
	Ref              string     `json:"ref" binding:"max=100"`
	Text             string     `json:"text"`
	Remarks          string     `json:"remarks"`
	AppliedToScopeID *uuid.UUID `json:"applied_to_scope_id"`
	Data             string     `json:"data"` // kind-specific JSON payload
}

// AmendmentResponse represents an amendment in API responses
type AmendmentResponse struct {
	ID            uuid.UUID        `json:"id"`
	ContractID    uuid.UUID        `json:"contract_id"`
	Name          string           `json:"name"`
	FullName      string           `json:"full_name"`
	SignDate      time.Time        `json:"sign_date"`
	EffectiveDate time.Time        `json:"effective_date"`
	Remarks       string           `json:"remarks"`
	Clauses       []ClauseResponse `json:"clauses"`
}

// ClauseResponse represents a clause in API responses
type ClauseResponse struct {
	ID               uuid.UUID  `json:"id"`
	AmendmentID      uuid.UUID  `json:"amendment_id"`
	Kind             string     `json:"kind"`
	Pos              string     `json:"pos"`
	Ref              string     `json:"ref"`
	Text             string     `json:"text"`
	Remarks          string     `json:"remarks"`
	AppliedToScopeID *uuid.UUID `json:"applied_to_scope_id"`
	Data             string     `json:"data"`
}

// ToAmendmentResponse converts a domain amendment to a response DTO
func ToAmendmentResponse(a *contract.Amendment) AmendmentResponse {
	clauses := make([]ClauseResponse, len(a.Clauses))
	for i := range a.Clauses {
		clauses[i] = ToClauseResponse(&a.Clauses[i])
	}
	return AmendmentResponse{
		ID:            a.ID,
		ContractID:    a.ContractID,
		Name:          a.Name,
		FullName:      a.FullName,
		SignDate:      a.SignDate,
		EffectiveDate: a.EffectiveDate,
		Remarks:       a.Remarks,
		Clauses:       clauses,
	}
}

// ToAmendmentResponses converts a slice of amendments to response DTOs
func ToAmendmentResponses(amendments []contract.Amendment) []AmendmentResponse {
	responses := make([]AmendmentResponse, len(amendments))
	for i := range amendments {
		responses[i] = ToAmendmentResponse(&amendments[i])
	}
	return responses
}

// ToClauseResponse converts a domain clause to a response DTO
func ToClauseResponse(c *contract.Clause) ClauseResponse {
	return ClauseResponse{
		ID:               c.ID,
		AmendmentID:      c.AmendmentID,
		Kind:             string(c.ClauseKind),
		Pos:              string(c.Pos),
		Ref:              c.Ref,
		Text:             c.Text,
		Remarks:          c.Remarks,
		AppliedToScopeID: c.AppliedToScopeID,
		Data:             c.RawData,
	}
}

// =============================================================================
// Scope DTOs
// =============================================================================

// CreateScopeRequest represents a request to create a scope
type CreateScopeRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	FullName string `json:"full_name" binding:"max=500"`
	Remarks  string `json:"remarks"`
}

// ScopeResponse represents a scope in API responses
type ScopeResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	FullName string    `json:"full_name"`
	Remarks  string    `json:"remarks"`
}

// ScopeEdgeRequest adds or removes a parent->child edge in the scope graph
type ScopeEdgeRequest struct {
	ChildID uuid.UUID `json:"child_id" binding:"required"`
}

// ToScopeResponse converts a domain scope to a response DTO
func ToScopeResponse(s *contract.Scope) ScopeResponse {
	return ScopeResponse{
		ID:       s.ID,
		Name:     s.Name,
		FullName: s.FullName,
		Remarks:  s.Remarks,
	}
}

// ToScopeResponses converts a slice of scopes to response DTOs
func ToScopeResponses(scopes []contract.Scope) []ScopeResponse {
	responses := make([]ScopeResponse, len(scopes))
	for i := range scopes {
		responses[i] = ToScopeResponse(&scopes[i])
	}
	return responses
}

// =============================================================================
// Entity DTOs
// =============================================================================

// CreateEntityRequest represents a request to create a legal entity
type CreateEntityRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=200"`
	FullName string     `json:"full_name" binding:"max=500"`
	GroupID  *uuid.UUID `json:"group_id"`
}

// EntityResponse represents a legal entity in API responses
type EntityResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	FullName string     `json:"full_name"`
	GroupID  *uuid.UUID `json:"group_id"`
}

// ToEntityResponse converts a domain entity to a response DTO
func ToEntityResponse(e *contract.Entity) EntityResponse {
	return EntityResponse{
		ID:       e.ID,
		Name:     e.Name,
		FullName: e.FullName,
		GroupID:  e.GroupID,
	}
}

// ToEntityResponses converts a slice of entities to response DTOs
func ToEntityResponses(entities []contract.Entity) []EntityResponse {
	responses := make([]EntityResponse, len(entities))
	for i := range entities {
		responses[i] = ToEntityResponse(&entities[i])
	}
	return responses
}

// =============================================================================
// Incentive DTOs
// =============================================================================

// CreateIncentiveRequest represents a request to attach a commercial incentive
type CreateIncentiveRequest struct {
	Name    string          `json:"name" binding:"required,min=1,max=200"`
	Rate    decimal.Decimal `json:"rate" binding:"required"`
	ScopeID *uuid.UUID      `json:"scope_id"`
	Remarks string          `json:"remarks"`
}

// IncentiveResponse represents a commercial incentive in API responses
type IncentiveResponse struct {
	ID         uuid.UUID       `json:"id"`
	ContractID uuid.UUID       `json:"contract_id"`
	ScopeID    *uuid.UUID      `json:"scope_id"`
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"`
	Remarks    string          `json:"remarks"`
}

// ToIncentiveResponse converts a domain incentive to a response DTO
func ToIncentiveResponse(i *contract.CommercialIncentive) IncentiveResponse {
	return IncentiveResponse{
		ID:         i.ID,
		ContractID: i.ContractID,
		ScopeID:    i.ScopeID,
		Name:       i.Name,
		Rate:       i.Rate,
		Remarks:    i.Remarks,
	}
}

// =============================================================================
// Dashboard DTOs
// =============================================================================

// DashboardResponse is the per-contract dashboard: the winning clauses and
// incentives grouped by scope, plus the derived contract state
type DashboardResponse struct {
	Contract   ContractResponse    `json:"contract"`
	ExpiryDate *time.Time          `json:"expiry_date"`
	Entities   []EntityResponse    `json:"entities"`
	Scopes     []ScopeResponse     `json:"scopes"`
	ScopeRows  []DashboardScopeRow `json:"scope_rows"`
}

// DashboardScopeRow groups the winning clauses and incentives for one scope.
// ScopeID is nil for the unscoped group.
type DashboardScopeRow struct {
	ScopeID    *uuid.UUID          `json:"scope_id"`
	ScopeName  string              `json:"scope_name"`
	Clauses    []ClauseResponse    `json:"clauses"`
	Incentives []IncentiveResponse `json:"incentives"`
}

// GanttRowResponse is one bar on the contract timeline chart
type GanttRowResponse struct {
	ContractID uuid.UUID  `json:"contract_id"`
	Name       string     `json:"name"`
	Start      *time.Time `json:"start"`
	End        *time.Time `json:"end"`
}
