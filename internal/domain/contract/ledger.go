package contract

import (
	"context"

	"github.com/google/uuid"
)

// Ledger is the read-only clause ledger accessor the resolution engine pulls
// its inputs through. Implementations fetch a consistent snapshot per call;
// the resolvers never cache results across calls.
//
// Contracts is needed by ContractsOfScope, which has to intersect the scope
// closure against every contract's current scope set.
type Ledger interface {
	// Contracts returns all contracts (without amendments)
	Contracts(ctx context.Context) ([]Contract, error)

	// AmendmentsOf returns the amendments of a contract, each carrying its
	// sign date, effective date and clauses (payloads decoded)
	AmendmentsOf(ctx context.Context, contractID uuid.UUID) ([]Amendment, error)

	// ClausesOfType returns the clauses of the given kind across all of a
	// contract's amendments, each with its owning Amendment populated
	ClausesOfType(ctx context.Context, contractID uuid.UUID, kind ClauseKind) ([]Clause, error)

	// ScopeEdges returns the full parent->child scope edge set
	ScopeEdges(ctx context.Context) ([]ScopeEdge, error)

	// ChildContractsOf returns the direct child contracts of a contract
	ChildContractsOf(ctx context.Context, contractID uuid.UUID) ([]Contract, error)
}

// RefSet is a set of referenced IDs, as returned by the resolvers
type RefSet map[uuid.UUID]struct{}

// Contains reports whether the set contains id
func (s RefSet) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set
func (s RefSet) Add(id uuid.UUID) {
	s[id] = struct{}{}
}

// IDs returns the members as a slice (unordered)
func (s RefSet) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
