package contract

import (
	"strings"
	"time"

	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Amendment is a dated, signed change document attached to a contract,
// bundling zero or more clauses. SignDate and EffectiveDate are independent:
// an amendment may be signed long before (or after) it takes effect.
type Amendment struct {
	shared.BaseEntity
	ContractID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(200);not null"`
	FullName      string    `gorm:"type:varchar(500)"`
	SignDate      time.Time `gorm:"type:date;not null"`
	EffectiveDate time.Time `gorm:"type:date;not null;index"`
	Remarks       string    `gorm:"type:text"`

	Clauses []Clause `gorm:"foreignKey:AmendmentID"`
}

// TableName returns the table name for GORM
func (Amendment) TableName() string {
	return "amendments"
}

// NewAmendment creates a new amendment for a contract
func NewAmendment(contractID uuid.UUID, name string, signDate, effectiveDate time.Time) (*Amendment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Amendment name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Amendment name cannot exceed 200 characters")
	}
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Amendment must belong to a contract")
	}
	if signDate.IsZero() || effectiveDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Amendment sign date and effective date are required")
	}

	return &Amendment{
		BaseEntity:    shared.NewBaseEntity(),
		ContractID:    contractID,
		Name:          name,
		SignDate:      signDate,
		EffectiveDate: effectiveDate,
	}, nil
}

// ApplicableAsOf reports whether the amendment is applicable as of the given
// date: both its sign date and its effective date must be on or before asOf.
func (a *Amendment) ApplicableAsOf(asOf time.Time) bool {
	return !a.SignDate.After(asOf) && !a.EffectiveDate.After(asOf)
}

// AddClause attaches a clause to the amendment
func (a *Amendment) AddClause(clause Clause) {
	clause.AmendmentID = a.ID
	a.Clauses = append(a.Clauses, clause)
	a.UpdatedAt = time.Now()
}
