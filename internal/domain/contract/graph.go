package contract

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScopeGraphResolver computes transitive closures over the directed
// parent->child scope graph. Closures are computed iteratively with a
// frontier and a visited set, so a cyclic edge set terminates and each
// reachable scope appears exactly once.
type ScopeGraphResolver struct {
	ledger     Ledger
	membership *MembershipReconstructor
	logger     *zap.Logger
}

// NewScopeGraphResolver creates a new ScopeGraphResolver. The ledger accessor
// is a hard precondition; calling without one is a programming error.
func NewScopeGraphResolver(ledger Ledger, membership *MembershipReconstructor, logger *zap.Logger) *ScopeGraphResolver {
	if ledger == nil {
		panic("ScopeGraphResolver requires a ledger accessor")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScopeGraphResolver{
		ledger:     ledger,
		membership: membership,
		logger:     logger.Named("scope_graph"),
	}
}

// Ancestors returns every scope reachable from scopeID by following
// child->parent edges, excluding scopeID itself.
func (r *ScopeGraphResolver) Ancestors(ctx context.Context, scopeID uuid.UUID) (RefSet, error) {
	edges, err := r.ledger.ScopeEdges(ctx)
	if err != nil {
		return nil, err
	}
	adjacency := make(map[uuid.UUID][]uuid.UUID, len(edges))
	for _, e := range edges {
		adjacency[e.ChildID] = append(adjacency[e.ChildID], e.ParentID)
	}
	return closure(scopeID, adjacency), nil
}

// Descendants returns every scope reachable from scopeID by following
// parent->child edges, excluding scopeID itself.
func (r *ScopeGraphResolver) Descendants(ctx context.Context, scopeID uuid.UUID) (RefSet, error) {
	edges, err := r.ledger.ScopeEdges(ctx)
	if err != nil {
		return nil, err
	}
	adjacency := make(map[uuid.UUID][]uuid.UUID, len(edges))
	for _, e := range edges {
		adjacency[e.ParentID] = append(adjacency[e.ParentID], e.ChildID)
	}
	return closure(scopeID, adjacency), nil
}

// ContractsOfScope returns the contracts whose current scope set intersects
// {scopeID} ∪ Descendants(scopeID).
func (r *ScopeGraphResolver) ContractsOfScope(ctx context.Context, scopeID uuid.UUID) (RefSet, error) {
	wanted, err := r.Descendants(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	wanted.Add(scopeID)

	contracts, err := r.ledger.Contracts(ctx)
	if err != nil {
		return nil, err
	}

	result := make(RefSet)
	for i := range contracts {
		scopes, err := r.membership.CurrentScopes(ctx, contracts[i].ID)
		if err != nil {
			return nil, err
		}
		for s := range scopes {
			if wanted.Contains(s) {
				result.Add(contracts[i].ID)
				break
			}
		}
	}
	return result, nil
}

// closure walks the adjacency relation from start with an explicit frontier
// and visited set. The start node is excluded from the result; a node on a
// cycle reachable from start is included exactly once.
func closure(start uuid.UUID, adjacency map[uuid.UUID][]uuid.UUID) RefSet {
	visited := make(RefSet)
	frontier := []uuid.UUID{start}
	for len(frontier) > 0 {
		node := frontier[0]
		frontier = frontier[1:]
		for _, next := range adjacency[node] {
			if next == start || visited.Contains(next) {
				continue
			}
			visited.Add(next)
			frontier = append(frontier, next)
		}
	}
	return visited
}
