package contract

import (
	"context"

	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContractRepository defines the interface for contract persistence
type ContractRepository interface {
	// FindByID finds a contract by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)

	// FindByName finds a contract by its unique name
	FindByName(ctx context.Context, name string) (*Contract, error)

	// FindAll finds all contracts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Contract, error)

	// Save creates or updates a contract
	Save(ctx context.Context, contract *Contract) error

	// Delete deletes a contract
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts contracts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a contract with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)

	// AddLink records a directed parent->child link between two contracts
	AddLink(ctx context.Context, parentID, childID uuid.UUID) error

	// RemoveLink removes a parent->child link
	RemoveLink(ctx context.Context, parentID, childID uuid.UUID) error

	// FindChildren returns the direct child contracts of a contract
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Contract, error)

	// FindParents returns the direct parent contracts of a contract
	FindParents(ctx context.Context, childID uuid.UUID) ([]Contract, error)
}

// AmendmentRepository defines the interface for amendment persistence.
// Amendments are loaded with their clauses; clause payloads are decoded
// through the clause registry on the way out.
type AmendmentRepository interface {
	// FindByID finds an amendment (with clauses) by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Amendment, error)

	// FindByContract returns all amendments of a contract, with clauses,
	// ordered by effective date ascending
	FindByContract(ctx context.Context, contractID uuid.UUID) ([]Amendment, error)

	// Save creates or updates an amendment together with its clauses
	Save(ctx context.Context, amendment *Amendment) error

	// Delete deletes an amendment and its clauses
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScopeRepository defines the interface for scope persistence
type ScopeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Scope, error)
	FindByName(ctx context.Context, name string) (*Scope, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Scope, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Scope, error)
	Save(ctx context.Context, scope *Scope) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddEdge records a directed parent->child edge in the scope graph
	AddEdge(ctx context.Context, parentID, childID uuid.UUID) error

	// RemoveEdge removes a parent->child edge
	RemoveEdge(ctx context.Context, parentID, childID uuid.UUID) error

	// Edges returns the full scope edge set
	Edges(ctx context.Context) ([]ScopeEdge, error)
}

// EntityRepository defines the interface for legal entity persistence
type EntityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Entity, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Entity, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Entity, error)
	FindByGroup(ctx context.Context, groupID uuid.UUID) ([]Entity, error)
	Save(ctx context.Context, entity *Entity) error
	Delete(ctx context.Context, id uuid.UUID) error

	SaveGroup(ctx context.Context, group *EntityGroup) error
	FindGroups(ctx context.Context, filter shared.Filter) ([]EntityGroup, error)
}
