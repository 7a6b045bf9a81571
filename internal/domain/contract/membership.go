package contract

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MembershipReconstructor derives a contract's current entity set and scope
// set from its full clause history.
//
// Reconstruction is set-algebraic, not a temporally ordered replay: the
// result is (union of new targets over add/update clauses) minus (union of
// old targets over remove/update clauses). A target that was ever added and
// ever removed is excluded regardless of the clauses' dates or storage order.
//
// Note that no applicability filter is applied: clauses from amendments that
// are not yet signed or effective still count. Callers needing an as-of view
// must pre-filter the clause history themselves.
type MembershipReconstructor struct {
	ledger Ledger
	logger *zap.Logger
}

// NewMembershipReconstructor creates a new MembershipReconstructor. The
// ledger accessor is a hard precondition.
func NewMembershipReconstructor(ledger Ledger, logger *zap.Logger) *MembershipReconstructor {
	if ledger == nil {
		panic("MembershipReconstructor requires a ledger accessor")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MembershipReconstructor{
		ledger: ledger,
		logger: logger.Named("membership"),
	}
}

// CurrentEntities returns the set of entity IDs currently party to the contract
func (m *MembershipReconstructor) CurrentEntities(ctx context.Context, contractID uuid.UUID) (RefSet, error) {
	clauses, err := m.ledger.ClausesOfType(ctx, contractID, ClauseKindEntity)
	if err != nil {
		return nil, err
	}

	added := make(RefSet)
	removed := make(RefSet)
	for i := range clauses {
		data, ok := clauses[i].Data.(*EntityClauseData)
		if !ok {
			m.logger.Warn("entity clause with malformed payload skipped",
				zap.String("condition", "DATA_INTEGRITY"),
				zap.String("contract_id", contractID.String()),
				zap.String("clause_id", clauses[i].ID.String()),
			)
			continue
		}
		collectMembership(data.Action, data.NewEntityID, data.OldEntityID, added, removed)
	}
	return difference(added, removed), nil
}

// CurrentScopes returns the set of scope IDs the contract currently covers
func (m *MembershipReconstructor) CurrentScopes(ctx context.Context, contractID uuid.UUID) (RefSet, error) {
	clauses, err := m.ledger.ClausesOfType(ctx, contractID, ClauseKindScope)
	if err != nil {
		return nil, err
	}

	added := make(RefSet)
	removed := make(RefSet)
	for i := range clauses {
		data, ok := clauses[i].Data.(*ScopeClauseData)
		if !ok {
			m.logger.Warn("scope clause with malformed payload skipped",
				zap.String("condition", "DATA_INTEGRITY"),
				zap.String("contract_id", contractID.String()),
				zap.String("clause_id", clauses[i].ID.String()),
			)
			continue
		}
		collectMembership(data.Action, data.NewScopeID, data.OldScopeID, added, removed)
	}
	return difference(added, removed), nil
}

// collectMembership folds a single clause into the added/removed sets:
// add/update contribute the new target, remove/update the old target.
func collectMembership(action ClauseAction, newTarget uuid.UUID, oldTarget *uuid.UUID, added, removed RefSet) {
	switch action {
	case ActionAdd:
		if newTarget != uuid.Nil {
			added.Add(newTarget)
		}
	case ActionRemove:
		if oldTarget != nil && *oldTarget != uuid.Nil {
			removed.Add(*oldTarget)
		}
	case ActionUpdate:
		if newTarget != uuid.Nil {
			added.Add(newTarget)
		}
		if oldTarget != nil && *oldTarget != uuid.Nil {
			removed.Add(*oldTarget)
		}
	}
}

func difference(a, b RefSet) RefSet {
	result := make(RefSet, len(a))
	for id := range a {
		if !b.Contains(id) {
			result.Add(id)
		}
	}
	return result
}
