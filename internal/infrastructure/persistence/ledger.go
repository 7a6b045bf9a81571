package persistence

import (
	"context"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// GormLedger implements contract.Ledger on top of the GORM repositories. It is
// a read-only composition; all writes go through the repositories directly.
type GormLedger struct {
	contracts  *GormContractRepository
	amendments *GormAmendmentRepository
	scopes     *GormScopeRepository
}

// NewGormLedger creates a new GormLedger
func NewGormLedger(contracts *GormContractRepository, amendments *GormAmendmentRepository, scopes *GormScopeRepository) *GormLedger {
	return &GormLedger{contracts: contracts, amendments: amendments, scopes: scopes}
}

// Contracts returns all contracts (without amendments)
func (l *GormLedger) Contracts(ctx context.Context) ([]contract.Contract, error) {
	return l.contracts.FindAll(ctx, shared.Filter{})
}

// AmendmentsOf returns the amendments of a contract with decoded clauses
func (l *GormLedger) AmendmentsOf(ctx context.Context, contractID uuid.UUID) ([]contract.Amendment, error) {
	return l.amendments.FindByContract(ctx, contractID)
}

// ClausesOfType returns the clauses of the given kind across all of a
// contract's amendments, each with its owning Amendment populated
func (l *GormLedger) ClausesOfType(ctx context.Context, contractID uuid.UUID, kind contract.ClauseKind) ([]contract.Clause, error) {
	amendments, err := l.amendments.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	var clauses []contract.Clause
	for i := range amendments {
		for j := range amendments[i].Clauses {
			c := amendments[i].Clauses[j]
			if c.ClauseKind != kind {
				continue
			}
			c.Amendment = &amendments[i]
			clauses = append(clauses, c)
		}
	}
	return clauses, nil
}

// ScopeEdges returns the full parent->child scope edge set
func (l *GormLedger) ScopeEdges(ctx context.Context) ([]contract.ScopeEdge, error) {
	return l.scopes.Edges(ctx)
}

// ChildContractsOf returns the direct child contracts of a contract
func (l *GormLedger) ChildContractsOf(ctx context.Context, contractID uuid.UUID) ([]contract.Contract, error) {
	return l.contracts.FindChildren(ctx, contractID)
}

// Ensure GormLedger implements Ledger
var _ contract.Ledger = (*GormLedger)(nil)
