package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// fakeLedger is an in-memory Ledger for resolver tests.
type fakeLedger struct {
	contracts  []Contract
	amendments map[uuid.UUID][]Amendment
	edges      []ScopeEdge
	children   map[uuid.UUID][]Contract
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		amendments: make(map[uuid.UUID][]Amendment),
		children:   make(map[uuid.UUID][]Contract),
	}
}

func (f *fakeLedger) Contracts(_ context.Context) ([]Contract, error) {
	return f.contracts, nil
}

func (f *fakeLedger) AmendmentsOf(_ context.Context, contractID uuid.UUID) ([]Amendment, error) {
	return f.amendments[contractID], nil
}

func (f *fakeLedger) ClausesOfType(_ context.Context, contractID uuid.UUID, kind ClauseKind) ([]Clause, error) {
	var result []Clause
	amendments := f.amendments[contractID]
	for i := range amendments {
		for j := range amendments[i].Clauses {
			if amendments[i].Clauses[j].ClauseKind != kind {
				continue
			}
			clause := amendments[i].Clauses[j]
			clause.Amendment = &amendments[i]
			result = append(result, clause)
		}
	}
	return result, nil
}

func (f *fakeLedger) ScopeEdges(_ context.Context) ([]ScopeEdge, error) {
	return f.edges, nil
}

func (f *fakeLedger) ChildContractsOf(_ context.Context, contractID uuid.UUID) ([]Contract, error) {
	return f.children[contractID], nil
}

func (f *fakeLedger) addContract() uuid.UUID {
	c := Contract{}
	c.ID = uuid.New()
	f.contracts = append(f.contracts, c)
	return c.ID
}

func (f *fakeLedger) addAmendment(contractID uuid.UUID, signDate, effectiveDate time.Time, clauses ...Clause) uuid.UUID {
	a := Amendment{
		ContractID:    contractID,
		SignDate:      signDate,
		EffectiveDate: effectiveDate,
	}
	a.ID = uuid.New()
	for i := range clauses {
		clauses[i].AmendmentID = a.ID
	}
	a.Clauses = clauses
	f.amendments[contractID] = append(f.amendments[contractID], a)
	return a.ID
}

func (f *fakeLedger) addEdge(parentID, childID uuid.UUID) {
	f.edges = append(f.edges, ScopeEdge{ParentID: parentID, ChildID: childID})
}

func (f *fakeLedger) addChildContract(parentID, childID uuid.UUID) {
	c := Contract{}
	c.ID = childID
	f.children[parentID] = append(f.children[parentID], c)
}

// Test data builders.

func onDay(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func entityClause(action ClauseAction, newID uuid.UUID, oldID *uuid.UUID) Clause {
	c := Clause{
		ClauseKind: ClauseKindEntity,
		Data:       &EntityClauseData{Action: action, NewEntityID: newID, OldEntityID: oldID},
	}
	c.ID = uuid.New()
	return c
}

func scopeClause(action ClauseAction, newID uuid.UUID, oldID *uuid.UUID) Clause {
	c := Clause{
		ClauseKind: ClauseKindScope,
		Data:       &ScopeClauseData{Action: action, NewScopeID: newID, OldScopeID: oldID},
	}
	c.ID = uuid.New()
	return c
}

func expiryClause(expiryType ExpiryType, expiryDate *time.Time, linkedContractID *uuid.UUID) Clause {
	c := Clause{
		ClauseKind: ClauseKindExpiry,
		Data: &ExpiryClauseData{
			ExpiryType:       expiryType,
			ExpiryDate:       expiryDate,
			LinkedContractID: linkedContractID,
		},
	}
	c.ID = uuid.New()
	return c
}

func terminationClause(terminationDate time.Time) Clause {
	c := Clause{
		ClauseKind: ClauseKindTermination,
		Data:       &TerminationClauseData{TerminationDate: terminationDate},
	}
	c.ID = uuid.New()
	return c
}
