package persistence

import (
	"context"
	"errors"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormIncentiveRepository implements contract.IncentiveRepository using GORM
type GormIncentiveRepository struct {
	db *gorm.DB
}

// NewGormIncentiveRepository creates a new GormIncentiveRepository
func NewGormIncentiveRepository(db *gorm.DB) *GormIncentiveRepository {
	return &GormIncentiveRepository{db: db}
}

// FindByID finds an incentive by its ID
func (r *GormIncentiveRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.CommercialIncentive, error) {
	var incentive contract.CommercialIncentive
	if err := r.db.WithContext(ctx).First(&incentive, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &incentive, nil
}

// FindByContract returns the incentives attached to a contract
func (r *GormIncentiveRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]contract.CommercialIncentive, error) {
	var incentives []contract.CommercialIncentive
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("name ASC").
		Find(&incentives).Error
	if err != nil {
		return nil, err
	}
	return incentives, nil
}

// Save creates or updates an incentive
func (r *GormIncentiveRepository) Save(ctx context.Context, incentive *contract.CommercialIncentive) error {
	return r.db.WithContext(ctx).Save(incentive).Error
}

// Delete deletes an incentive
func (r *GormIncentiveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&contract.CommercialIncentive{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormIncentiveRepository implements IncentiveRepository
var _ contract.IncentiveRepository = (*GormIncentiveRepository)(nil)
