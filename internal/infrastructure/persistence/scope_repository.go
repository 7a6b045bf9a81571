package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormScopeRepository implements contract.ScopeRepository using GORM
type GormScopeRepository struct {
	db *gorm.DB
}

// NewGormScopeRepository creates a new GormScopeRepository
func NewGormScopeRepository(db *gorm.DB) *GormScopeRepository {
	return &GormScopeRepository{db: db}
}

// FindByID finds a scope by its ID
func (r *GormScopeRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Scope, error) {
	var scope contract.Scope
	if err := r.db.WithContext(ctx).First(&scope, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &scope, nil
}

// FindByName finds a scope by its unique name
func (r *GormScopeRepository) FindByName(ctx context.Context, name string) (*contract.Scope, error) {
	var scope contract.Scope
	if err := r.db.WithContext(ctx).First(&scope, "name = ?", strings.TrimSpace(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &scope, nil
}

// FindAll finds all scopes matching the filter
func (r *GormScopeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Scope, error) {
	var scopes []contract.Scope
	query := r.db.WithContext(ctx).Model(&contract.Scope{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, ScopeSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if err := query.Order(orderBy + " " + orderDir).Find(&scopes).Error; err != nil {
		return nil, err
	}
	return scopes, nil
}

// FindByIDs finds multiple scopes by their IDs
func (r *GormScopeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]contract.Scope, error) {
	if len(ids) == 0 {
		return []contract.Scope{}, nil
	}
	var scopes []contract.Scope
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&scopes).Error; err != nil {
		return nil, err
	}
	return scopes, nil
}

// Save creates or updates a scope
func (r *GormScopeRepository) Save(ctx context.Context, scope *contract.Scope) error {
	return r.db.WithContext(ctx).Save(scope).Error
}

// Delete deletes a scope and its edges
func (r *GormScopeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("parent_id = ? OR child_id = ?", id, id).
			Delete(&contract.ScopeEdge{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&contract.Scope{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// AddEdge records a directed parent->child edge in the scope graph
func (r *GormScopeRepository) AddEdge(ctx context.Context, parentID, childID uuid.UUID) error {
	edge := contract.ScopeEdge{ParentID: parentID, ChildID: childID, CreatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge).Error
}

// RemoveEdge removes a parent->child edge
func (r *GormScopeRepository) RemoveEdge(ctx context.Context, parentID, childID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("parent_id = ? AND child_id = ?", parentID, childID).
		Delete(&contract.ScopeEdge{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Edges returns the full scope edge set
func (r *GormScopeRepository) Edges(ctx context.Context) ([]contract.ScopeEdge, error) {
	var edges []contract.ScopeEdge
	if err := r.db.WithContext(ctx).Find(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

// Ensure GormScopeRepository implements ScopeRepository
var _ contract.ScopeRepository = (*GormScopeRepository)(nil)
