package contract

import (
	"strings"
	"time"

	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Contract represents a legal contract whose terms evolve through dated
// amendments. It is the aggregate root for contract-related operations.
//
// The associated entity set, scope set and effective expiry date are derived
// quantities: they are reconstructed from the clause ledger on every request
// (see MembershipReconstructor and ExpiryResolver) and never stored on the
// contract row.
type Contract struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName    string `gorm:"type:varchar(500)"`
	ExternalRef string `gorm:"type:varchar(100);index"` // counterparty's contract number
	Remarks     string `gorm:"type:text"`

	Amendments []Amendment `gorm:"foreignKey:ContractID"`
}

// TableName returns the table name for GORM
func (Contract) TableName() string {
	return "contracts"
}

// ContractLink is a directed parent->child edge between contracts.
// The resulting graph is nominally a DAG but acyclicity is not enforced;
// the expiry resolver guards against cycles at resolution time.
type ContractLink struct {
	ParentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChildID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (ContractLink) TableName() string {
	return "contract_links"
}

// NewContract creates a new contract with required fields
func NewContract(name, fullName string) (*Contract, error) {
	if err := validateContractName(name); err != nil {
		return nil, err
	}

	contract := &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		FullName:          strings.TrimSpace(fullName),
	}

	contract.AddDomainEvent(NewContractCreatedEvent(contract))

	return contract, nil
}

// Update updates the contract's basic information
func (c *Contract) Update(name, fullName string) error {
	if err := validateContractName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.FullName = strings.TrimSpace(fullName)
	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewContractUpdatedEvent(c))

	return nil
}

// SetExternalRef sets the counterparty contract number
func (c *Contract) SetExternalRef(ref string) error {
	if len(ref) > 100 {
		return shared.NewDomainError("INVALID_EXTERNAL_REF", "External reference cannot exceed 100 characters")
	}
	c.ExternalRef = strings.TrimSpace(ref)
	c.UpdatedAt = time.Now()
	return nil
}

// SetRemarks sets free-form remarks
func (c *Contract) SetRemarks(remarks string) {
	c.Remarks = remarks
	c.UpdatedAt = time.Now()
}

// EarliestEffectiveDate returns the smallest effective date across the
// contract's amendments, or nil when the contract has none. This is the
// contract's own effective date.
func (c *Contract) EarliestEffectiveDate() *time.Time {
	var earliest *time.Time
	for i := range c.Amendments {
		d := c.Amendments[i].EffectiveDate
		if earliest == nil || d.Before(*earliest) {
			t := d
			earliest = &t
		}
	}
	return earliest
}

func validateContractName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Contract name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Contract name cannot exceed 200 characters")
	}
	return nil
}
