package contract

import (
	"context"
	"strings"

	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommercialIncentive is a per-scope commercial term attached to a contract
// (rebate, discount). Shown alongside the winning scope clauses on the
// contract dashboard.
type CommercialIncentive struct {
	shared.BaseEntity
	ContractID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ScopeID    *uuid.UUID      `gorm:"type:uuid;index"` // nil applies contract-wide
	Name       string          `gorm:"type:varchar(200);not null"`
	Rate       decimal.Decimal `gorm:"type:decimal(9,6);not null;default:0"` // fraction, e.g. 0.025 = 2.5%
	Remarks    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CommercialIncentive) TableName() string {
	return "commercial_incentives"
}

// NewCommercialIncentive creates a new incentive for a contract
func NewCommercialIncentive(contractID uuid.UUID, name string, rate decimal.Decimal) (*CommercialIncentive, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Incentive name cannot be empty")
	}
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Incentive must belong to a contract")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Incentive rate cannot be negative")
	}

	return &CommercialIncentive{
		BaseEntity: shared.NewBaseEntity(),
		ContractID: contractID,
		Name:       name,
		Rate:       rate,
	}, nil
}

// AppliedToScope restricts the incentive to a scope
func (i *CommercialIncentive) AppliedToScope(scopeID uuid.UUID) {
	i.ScopeID = &scopeID
}

// IncentiveRepository defines persistence for commercial incentives
type IncentiveRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CommercialIncentive, error)
	FindByContract(ctx context.Context, contractID uuid.UUID) ([]CommercialIncentive, error)
	Save(ctx context.Context, incentive *CommercialIncentive) error
	Delete(ctx context.Context, id uuid.UUID) error
}
