package contract

import (
	"context"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ScopeService handles scope hierarchy operations
type ScopeService struct {
	scopeRepo    contract.ScopeRepository
	contractRepo contract.ContractRepository
	graph        *contract.ScopeGraphResolver
}

// NewScopeService creates a new ScopeService
func NewScopeService(
	scopeRepo contract.ScopeRepository,
	contractRepo contract.ContractRepository,
	graph *contract.ScopeGraphResolver,
) *ScopeService {
	return &ScopeService{
		scopeRepo:    scopeRepo,
		contractRepo: contractRepo,
		graph:        graph,
	}
}

// Create creates a new scope
func (s *ScopeService) Create(ctx context.Context, req CreateScopeRequest) (*ScopeResponse, error) {
	existing, err := s.scopeRepo.FindByName(ctx, req.Name)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Scope with this name already exists")
	}

	scope, err := contract.NewScope(req.Name, req.FullName)
	if err != nil {
		return nil, err
	}
	scope.Remarks = req.Remarks

	if err := s.scopeRepo.Save(ctx, scope); err != nil {
		return nil, err
	}

	response := ToScopeResponse(scope)
	return &response, nil
}

// GetByID retrieves a scope by ID
func (s *ScopeService) GetByID(ctx context.Context, scopeID uuid.UUID) (*ScopeResponse, error) {
	scope, err := s.scopeRepo.FindByID(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	response := ToScopeResponse(scope)
	return &response, nil
}

// List retrieves all scopes
func (s *ScopeService) List(ctx context.Context, filter shared.Filter) ([]ScopeResponse, error) {
	scopes, err := s.scopeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToScopeResponses(scopes), nil
}

// Delete deletes a scope
func (s *ScopeService) Delete(ctx context.Context, scopeID uuid.UUID) error {
	if _, err := s.scopeRepo.FindByID(ctx, scopeID); err != nil {
		return err
	}
	return s.scopeRepo.Delete(ctx, scopeID)
}

// AddEdge records a parent->child edge in the scope graph
func (s *ScopeService) AddEdge(ctx context.Context, parentID, childID uuid.UUID) error {
	if parentID == childID {
		return shared.NewDomainError("INVALID_EDGE", "A scope cannot be its own child")
	}
	if _, err := s.scopeRepo.FindByID(ctx, parentID); err != nil {
		return err
	}
	if _, err := s.scopeRepo.FindByID(ctx, childID); err != nil {
		return err
	}
	return s.scopeRepo.AddEdge(ctx, parentID, childID)
}

// RemoveEdge removes a parent->child edge
func (s *ScopeService) RemoveEdge(ctx context.Context, parentID, childID uuid.UUID) error {
	return s.scopeRepo.RemoveEdge(ctx, parentID, childID)
}

// Ancestors returns every scope above the given scope in the hierarchy,
// excluding the scope itself
func (s *ScopeService) Ancestors(ctx context.Context, scopeID uuid.UUID) ([]ScopeResponse, error) {
	if _, err := s.scopeRepo.FindByID(ctx, scopeID); err != nil {
		return nil, err
	}
	set, err := s.graph.Ancestors(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	return s.resolveScopes(ctx, set)
}

// Descendants returns every scope below the given scope in the hierarchy,
// excluding the scope itself
func (s *ScopeService) Descendants(ctx context.Context, scopeID uuid.UUID) ([]ScopeResponse, error) {
	if _, err := s.scopeRepo.FindByID(ctx, scopeID); err != nil {
		return nil, err
	}
	set, err := s.graph.Descendants(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	return s.resolveScopes(ctx, set)
}

// Contracts returns the contracts currently attached to the scope or any of
// its descendants
func (s *ScopeService) Contracts(ctx context.Context, scopeID uuid.UUID) ([]ContractResponse, error) {
	if _, err := s.scopeRepo.FindByID(ctx, scopeID); err != nil {
		return nil, err
	}
	set, err := s.graph.ContractsOfScope(ctx, scopeID)
	if err != nil {
		return nil, err
	}

	responses := make([]ContractResponse, 0, len(set))
	for _, id := range set.IDs() {
		c, err := s.contractRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		responses = append(responses, ToContractResponse(c))
	}
	return responses, nil
}

func (s *ScopeService) resolveScopes(ctx context.Context, set contract.RefSet) ([]ScopeResponse, error) {
	if len(set) == 0 {
		return []ScopeResponse{}, nil
	}
	scopes, err := s.scopeRepo.FindByIDs(ctx, set.IDs())
	if err != nil {
		return nil, err
	}
	return ToScopeResponses(scopes), nil
}
