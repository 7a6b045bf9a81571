package persistence

import (
	"context"
	"errors"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEntityRepository implements contract.EntityRepository using GORM
type GormEntityRepository struct {
	db *gorm.DB
}

// NewGormEntityRepository creates a new GormEntityRepository
func NewGormEntityRepository(db *gorm.DB) *GormEntityRepository {
	return &GormEntityRepository{db: db}
}

// FindByID finds a legal entity by its ID
func (r *GormEntityRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Entity, error) {
	var entity contract.Entity
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll finds all legal entities matching the filter
func (r *GormEntityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Entity, error) {
	var entities []contract.Entity
	query := r.db.WithContext(ctx).Model(&contract.Entity{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, EntitySortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(orderBy + " " + orderDir).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// FindByIDs finds multiple legal entities by their IDs
func (r *GormEntityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]contract.Entity, error) {
	if len(ids) == 0 {
		return []contract.Entity{}, nil
	}
	var entities []contract.Entity
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// FindByGroup returns the entities of a group
func (r *GormEntityRepository) FindByGroup(ctx context.Context, groupID uuid.UUID) ([]contract.Entity, error) {
	var entities []contract.Entity
	if err := r.db.WithContext(ctx).Where("group_id = ?", groupID).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save creates or updates a legal entity
func (r *GormEntityRepository) Save(ctx context.Context, entity *contract.Entity) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete deletes a legal entity
func (r *GormEntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&contract.Entity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveGroup creates or updates an entity group
func (r *GormEntityRepository) SaveGroup(ctx context.Context, group *contract.EntityGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// FindGroups finds all entity groups matching the filter
func (r *GormEntityRepository) FindGroups(ctx context.Context, filter shared.Filter) ([]contract.EntityGroup, error) {
	var groups []contract.EntityGroup
	query := r.db.WithContext(ctx).Model(&contract.EntityGroup{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}
	if err := query.Order("name ASC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Ensure GormEntityRepository implements EntityRepository
var _ contract.EntityRepository = (*GormEntityRepository)(nil)
