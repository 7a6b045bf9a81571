package contract

import (
	"context"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EntityService handles legal entity and entity group operations
type EntityService struct {
	entityRepo contract.EntityRepository
}

// NewEntityService creates a new EntityService
func NewEntityService(entityRepo contract.EntityRepository) *EntityService {
	return &EntityService{entityRepo: entityRepo}
}

// Create creates a new legal entity
func (s *EntityService) Create(ctx context.Context, req CreateEntityRequest) (*EntityResponse, error) {
	entity, err := contract.NewEntity(req.Name, req.FullName, req.GroupID)
	if err != nil {
		return nil, err
	}

	if err := s.entityRepo.Save(ctx, entity); err != nil {
		return nil, err
	}

	response := ToEntityResponse(entity)
	return &response, nil
}

// GetByID retrieves a legal entity by ID
func (s *EntityService) GetByID(ctx context.Context, entityID uuid.UUID) (*EntityResponse, error) {
	entity, err := s.entityRepo.FindByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	response := ToEntityResponse(entity)
	return &response, nil
}

// List retrieves all legal entities
func (s *EntityService) List(ctx context.Context, filter shared.Filter) ([]EntityResponse, error) {
	entities, err := s.entityRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToEntityResponses(entities), nil
}

// ListByGroup retrieves the entities of a group
func (s *EntityService) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]EntityResponse, error) {
	entities, err := s.entityRepo.FindByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ToEntityResponses(entities), nil
}

// Delete deletes a legal entity
func (s *EntityService) Delete(ctx context.Context, entityID uuid.UUID) error {
	if _, err := s.entityRepo.FindByID(ctx, entityID); err != nil {
		return err
	}
	return s.entityRepo.Delete(ctx, entityID)
}

// CreateGroup creates a new entity group
func (s *EntityService) CreateGroup(ctx context.Context, name string) (*contract.EntityGroup, error) {
	group, err := contract.NewEntityGroup(name)
	if err != nil {
		return nil, err
	}
	if err := s.entityRepo.SaveGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups retrieves all entity groups
func (s *EntityService) ListGroups(ctx context.Context, filter shared.Filter) ([]contract.EntityGroup, error) {
	return s.entityRepo.FindGroups(ctx, filter)
}
