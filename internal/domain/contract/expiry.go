package contract

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Condition codes for expiry resolution anomalies. These are data anomalies,
// not errors: the resolver recovers each of them to an unknown ("nil") expiry
// date plus a diagnostic log entry, because contract data is expected to be
// occasionally incomplete and callers must render "unknown" gracefully.
const (
	ConditionCycleDetected     = "CYCLE_DETECTED"
	ConditionMissingLink       = "MISSING_LINK"
	ConditionUnresolvedChild   = "UNRESOLVED_CHILD"
	ConditionUnknownExpiryType = "UNKNOWN_EXPIRY_TYPE"
)

// ExpiryResolver computes a contract's effective expiry date from its clause
// ledger. Resolution may chain through linked contracts and aggregate over
// child contracts; a per-call visited set bounds the recursion, so cyclic
// contract references terminate with an unknown result instead of looping.
//
// Every call resolves from scratch against the ledger; nothing is memoized
// across calls.
type ExpiryResolver struct {
	ledger Ledger
	logger *zap.Logger
}

// NewExpiryResolver creates a new ExpiryResolver. The ledger accessor is a
// hard precondition; calling without one is a programming error.
func NewExpiryResolver(ledger Ledger, logger *zap.Logger) *ExpiryResolver {
	if ledger == nil {
		panic("ExpiryResolver requires a ledger accessor")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpiryResolver{
		ledger: ledger,
		logger: logger.Named("expiry"),
	}
}

// ExpiryDate resolves the contract's effective expiry date as of today.
// A nil date with a nil error means the expiry is unknown.
func (r *ExpiryResolver) ExpiryDate(ctx context.Context, contractID uuid.UUID) (*time.Time, error) {
	return r.ExpiryDateAsOf(ctx, contractID, time.Now())
}

// ExpiryDateAsOf resolves the contract's effective expiry date considering
// only amendments that are both signed and effective on or before asOf.
//
// An explicit termination clause on the most recently effective applicable
// amendment overrides the whole expiry chain. Otherwise the most recently
// signed applicable amendment carrying an expiry clause decides: a fixed
// date, the linked contract's own resolved expiry, or the latest of a fixed
// date and all direct child contracts' expiries.
func (r *ExpiryResolver) ExpiryDateAsOf(ctx context.Context, contractID uuid.UUID, asOf time.Time) (*time.Time, error) {
	terminated, date, err := r.terminationDate(ctx, contractID, asOf)
	if err != nil {
		return nil, err
	}
	if terminated {
		return date, nil
	}

	visited := make(RefSet)
	return r.resolve(ctx, contractID, asOf, visited)
}

// terminationDate returns the termination date of the latest applicable
// termination clause, if any. Checked at the top level only: a terminated
// linked or child contract still resolves through its expiry clauses.
func (r *ExpiryResolver) terminationDate(ctx context.Context, contractID uuid.UUID, asOf time.Time) (bool, *time.Time, error) {
	clauses, err := r.ledger.ClausesOfType(ctx, contractID, ClauseKindTermination)
	if err != nil {
		return false, nil, err
	}

	applicable := make([]Clause, 0, len(clauses))
	for i := range clauses {
		if clauses[i].Amendment != nil && clauses[i].Amendment.ApplicableAsOf(asOf) {
			applicable = append(applicable, clauses[i])
		}
	}
	if len(applicable) == 0 {
		return false, nil, nil
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Amendment.EffectiveDate.After(applicable[j].Amendment.EffectiveDate)
	})

	data, ok := applicable[0].Data.(*TerminationClauseData)
	if !ok {
		r.logger.Warn("termination clause with malformed payload",
			zap.String("condition", ConditionUnknownExpiryType),
			zap.String("contract_id", contractID.String()),
			zap.String("clause_id", applicable[0].ID.String()),
		)
		return true, nil, nil
	}
	d := data.TerminationDate
	return true, &d, nil
}

func (r *ExpiryResolver) resolve(ctx context.Context, contractID uuid.UUID, asOf time.Time, visited RefSet) (*time.Time, error) {
	if visited.Contains(contractID) {
		r.logger.Warn("contract reference cycle during expiry resolution",
			zap.String("condition", ConditionCycleDetected),
			zap.String("contract_id", contractID.String()),
		)
		return nil, nil
	}
	visited.Add(contractID)

	amendments, err := r.ledger.AmendmentsOf(ctx, contractID)
	if err != nil {
		return nil, err
	}

	applicable := make([]Amendment, 0, len(amendments))
	for i := range amendments {
		if amendments[i].ApplicableAsOf(asOf) {
			applicable = append(applicable, amendments[i])
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].SignDate.After(applicable[j].SignDate)
	})

	// The most recently signed amendment carrying an expiry clause decides;
	// within that amendment the first expiry clause in storage order wins.
	for i := range applicable {
		for j := range applicable[i].Clauses {
			clause := &applicable[i].Clauses[j]
			if clause.ClauseKind != ClauseKindExpiry {
				continue
			}
			return r.evaluate(ctx, contractID, clause, asOf, visited)
		}
	}
	return nil, nil
}

func (r *ExpiryResolver) evaluate(ctx context.Context, contractID uuid.UUID, clause *Clause, asOf time.Time, visited RefSet) (*time.Time, error) {
	data, ok := clause.Data.(*ExpiryClauseData)
	if !ok {
		r.logger.Warn("expiry clause with malformed payload",
			zap.String("condition", ConditionUnknownExpiryType),
			zap.String("contract_id", contractID.String()),
			zap.String("clause_id", clause.ID.String()),
		)
		return nil, nil
	}

	switch data.ExpiryType {
	case ExpiryFixedDate:
		return data.ExpiryDate, nil

	case ExpiryLinkedToContract:
		if data.LinkedContractID == nil {
			r.logger.Warn("expiry clause links to no contract",
				zap.String("condition", ConditionMissingLink),
				zap.String("contract_id", contractID.String()),
				zap.String("clause_id", clause.ID.String()),
			)
			return nil, nil
		}
		return r.resolve(ctx, *data.LinkedContractID, asOf, visited)

	case ExpiryLatestOfChildrenOrFixedDate:
		result := data.ExpiryDate
		children, err := r.ledger.ChildContractsOf(ctx, contractID)
		if err != nil {
			return nil, err
		}
		for i := range children {
			childResult, err := r.resolve(ctx, children[i].ID, asOf, visited)
			if err != nil {
				return nil, err
			}
			if childResult == nil {
				// An unresolved child poisons the parent's result.
				r.logger.Warn("child contract expiry unresolved",
					zap.String("condition", ConditionUnresolvedChild),
					zap.String("contract_id", contractID.String()),
					zap.String("child_contract_id", children[i].ID.String()),
				)
				return nil, nil
			}
			if result == nil || childResult.After(*result) {
				result = childResult
			}
		}
		return result, nil

	default:
		r.logger.Warn("unrecognized expiry type",
			zap.String("condition", ConditionUnknownExpiryType),
			zap.String("contract_id", contractID.String()),
			zap.String("clause_id", clause.ID.String()),
			zap.String("expiry_type", string(data.ExpiryType)),
		)
		return nil, nil
	}
}
