package contract

import (
	"strings"
	"time"

	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Scope is a node in the hierarchical scope graph contracts attach to
// (a business area, region, product line and so on).
type Scope struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName string `gorm:"type:varchar(500)"`
	Remarks  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Scope) TableName() string {
	return "scopes"
}

// ScopeEdge is a directed parent->child edge in the scope graph. The graph
// is nominally a DAG but acyclicity is not enforced at write time; the graph
// resolver computes closures with a visited set so cycles terminate.
type ScopeEdge struct {
	ParentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChildID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (ScopeEdge) TableName() string {
	return "scope_edges"
}

// NewScope creates a new scope
func NewScope(name, fullName string) (*Scope, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Scope name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Scope name cannot exceed 200 characters")
	}

	return &Scope{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		FullName:   strings.TrimSpace(fullName),
	}, nil
}
