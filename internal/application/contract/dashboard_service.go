package contract

import (
	"context"
	"sort"
	"time"

	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/google/uuid"
)

// DashboardService assembles the per-contract dashboard and timeline views.
// Everything it serves is derived from the clause ledger at request time.
type DashboardService struct {
	contractRepo  contract.ContractRepository
	scopeRepo     contract.ScopeRepository
	entityRepo    contract.EntityRepository
	incentiveRepo contract.IncentiveRepository
	ledger        contract.Ledger
	membership    *contract.MembershipReconstructor
	expiry        *contract.ExpiryResolver
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	contractRepo contract.ContractRepository,
	scopeRepo contract.ScopeRepository,
	entityRepo contract.EntityRepository,
	incentiveRepo contract.IncentiveRepository,
	ledger contract.Ledger,
	membership *contract.MembershipReconstructor,
	expiry *contract.ExpiryResolver,
) *DashboardService {
	return &DashboardService{
		contractRepo:  contractRepo,
		scopeRepo:     scopeRepo,
		entityRepo:    entityRepo,
		incentiveRepo: incentiveRepo,
		ledger:        ledger,
		membership:    membership,
		expiry:        expiry,
	}
}

// Dashboard builds the contract dashboard as of the given reference date:
// the contract's derived state plus, per scope, the clauses of the winning
// amendment and the commercial incentives attached to that scope
func (s *DashboardService) Dashboard(ctx context.Context, contractID uuid.UUID, asOf time.Time) (*DashboardResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	amendments, err := s.ledger.AmendmentsOf(ctx, contractID)
	if err != nil {
		return nil, err
	}
	c.Amendments = amendments

	entitySet, err := s.membership.CurrentEntities(ctx, contractID)
	if err != nil {
		return nil, err
	}
	scopeSet, err := s.membership.CurrentScopes(ctx, contractID)
	if err != nil {
		return nil, err
	}
	expiryDate, err := s.expiry.ExpiryDateAsOf(ctx, contractID, asOf)
	if err != nil {
		return nil, err
	}

	entities, err := s.resolveEntities(ctx, entitySet)
	if err != nil {
		return nil, err
	}
	scopes, err := s.resolveScopes(ctx, scopeSet)
	if err != nil {
		return nil, err
	}

	rows, err := s.scopeRows(ctx, contractID, amendments, asOf)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Contract:   ToContractResponse(c),
		ExpiryDate: expiryDate,
		Entities:   entities,
		Scopes:     scopes,
		ScopeRows:  rows,
	}, nil
}

// Gantt builds the timeline rows for a contract and its direct children:
// one bar per contract, spanning its earliest effective date to its resolved
// expiry date. Either end may be nil when it cannot be determined.
func (s *DashboardService) Gantt(ctx context.Context, contractID uuid.UUID) ([]GanttRowResponse, error) {
	root, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	children, err := s.ledger.ChildContractsOf(ctx, contractID)
	if err != nil {
		return nil, err
	}

	contracts := append([]contract.Contract{*root}, children...)
	rows := make([]GanttRowResponse, 0, len(contracts))
	now := time.Now()

	for i := range contracts {
		c := &contracts[i]
		amendments, err := s.ledger.AmendmentsOf(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Amendments = amendments

		end, err := s.expiry.ExpiryDateAsOf(ctx, c.ID, now)
		if err != nil {
			return nil, err
		}

		rows = append(rows, GanttRowResponse{
			ContractID: c.ID,
			Name:       c.Name,
			Start:      c.EarliestEffectiveDate(),
			End:        end,
		})
	}
	return rows, nil
}

// scopeRows flattens the contract's clauses, keeps per scope only the
// clauses of the winning amendment, and attaches that scope's incentives
func (s *DashboardService) scopeRows(ctx context.Context, contractID uuid.UUID, amendments []contract.Amendment, asOf time.Time) ([]DashboardScopeRow, error) {
	clauses := flattenClauses(amendments)
	winning := contract.LatestApplicable(clauses, asOf, contract.ScopeKey)

	incentives, err := s.incentiveRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*DashboardScopeRow)
	order := make([]string, 0)

	rowFor := func(scopeID *uuid.UUID) *DashboardScopeRow {
		key := contract.UnscopedKey
		if scopeID != nil {
			key = scopeID.String()
		}
		row, ok := grouped[key]
		if !ok {
			row = &DashboardScopeRow{
				ScopeID:    scopeID,
				Clauses:    []ClauseResponse{},
				Incentives: []IncentiveResponse{},
			}
			grouped[key] = row
			order = append(order, key)
		}
		return row
	}

	for i := range winning {
		row := rowFor(winning[i].AppliedToScopeID)
		row.Clauses = append(row.Clauses, ToClauseResponse(&winning[i]))
	}
	for i := range incentives {
		row := rowFor(incentives[i].ScopeID)
		row.Incentives = append(row.Incentives, ToIncentiveResponse(&incentives[i]))
	}

	rows := make([]DashboardScopeRow, 0, len(order))
	for _, key := range order {
		row := grouped[key]
		if row.ScopeID != nil {
			scope, err := s.scopeRepo.FindByID(ctx, *row.ScopeID)
			if err == nil {
				row.ScopeName = scope.Name
			}
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

func (s *DashboardService) resolveEntities(ctx context.Context, set contract.RefSet) ([]EntityResponse, error) {
	if len(set) == 0 {
		return []EntityResponse{}, nil
	}
	entities, err := s.entityRepo.FindByIDs(ctx, set.IDs())
	if err != nil {
		return nil, err
	}
	return ToEntityResponses(entities), nil
}

func (s *DashboardService) resolveScopes(ctx context.Context, set contract.RefSet) ([]ScopeResponse, error) {
	if len(set) == 0 {
		return []ScopeResponse{}, nil
	}
	scopes, err := s.scopeRepo.FindByIDs(ctx, set.IDs())
	if err != nil {
		return nil, err
	}
	return ToScopeResponses(scopes), nil
}

// flattenClauses collects the clauses of all amendments, each carrying its
// owning amendment, ordered by amendment effective date descending as the
// deduplication expects
func flattenClauses(amendments []contract.Amendment) []contract.Clause {
	ordered := make([]contract.Amendment, len(amendments))
	copy(ordered, amendments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EffectiveDate.After(ordered[j].EffectiveDate)
	})

	var clauses []contract.Clause
	for i := range ordered {
		for j := range ordered[i].Clauses {
			clause := ordered[i].Clauses[j]
			clause.Amendment = &ordered[i]
			clauses = append(clauses, clause)
		}
	}
	return clauses
}
