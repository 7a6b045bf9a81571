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

// GormContractRepository implements contract.ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	var c contract.Contract
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByName finds a contract by its unique name
func (r *GormContractRepository) FindByName(ctx context.Context, name string) (*contract.Contract, error) {
	var c contract.Contract
	if err := r.db.WithContext(ctx).First(&c, "name = ?", strings.TrimSpace(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll finds all contracts matching the filter
func (r *GormContractRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Contract, error) {
	var contracts []contract.Contract
	query := r.applyFilter(r.db.WithContext(ctx).Model(&contract.Contract{}), filter)
	if err := query.Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// Save creates or updates a contract
func (r *GormContractRepository) Save(ctx context.Context, c *contract.Contract) error {
	return r.db.WithContext(ctx).Omit("Amendments").Save(c).Error
}

// Delete deletes a contract, its links and its amendments with their clauses
func (r *GormContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("parent_id = ? OR child_id = ?", id, id).
			Delete(&contract.ContractLink{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("amendment_id IN (?)", tx.Model(&contract.Amendment{}).Select("id").Where("contract_id = ?", id)).
			Delete(&contract.Clause{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contract_id = ?", id).Delete(&contract.Amendment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&contract.Contract{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts contracts matching the filter
func (r *GormContractRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&contract.Contract{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a contract with the given name exists
func (r *GormContractRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&contract.Contract{}).
		Where("name = ?", strings.TrimSpace(name)).
		Count(&count).Error
	return count > 0, err
}

// AddLink records a directed parent->child link between two contracts
func (r *GormContractRepository) AddLink(ctx context.Context, parentID, childID uuid.UUID) error {
	link := contract.ContractLink{ParentID: parentID, ChildID: childID, CreatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

// RemoveLink removes a parent->child link
func (r *GormContractRepository) RemoveLink(ctx context.Context, parentID, childID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("parent_id = ? AND child_id = ?", parentID, childID).
		Delete(&contract.ContractLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindChildren returns the direct child contracts of a contract
func (r *GormContractRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]contract.Contract, error) {
	var contracts []contract.Contract
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&contract.ContractLink{}).Select("child_id").Where("parent_id = ?", parentID)).
		Order("name ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// FindParents returns the direct parent contracts of a contract
func (r *GormContractRepository) FindParents(ctx context.Context, childID uuid.UUID) ([]contract.Contract, error) {
	var contracts []contract.Contract
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&contract.ContractLink{}).Select("parent_id").Where("child_id = ?", childID)).
		Order("name ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *GormContractRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, ContractSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormContractRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR full_name ILIKE ? OR external_ref ILIKE ?",
			pattern, pattern, pattern)
	}
	return query
}

// Ensure GormContractRepository implements ContractRepository
var _ contract.ContractRepository = (*GormContractRepository)(nil)
