package contract

import (
	"time"

	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClauseKind tags a clause's structured payload type. The set of kinds is
// closed: every kind maps to exactly one ClauseData variant in the registry.
type ClauseKind string

const (
	ClauseKindText        ClauseKind = "clause_text"
	ClauseKindEntity      ClauseKind = "clause_entity"
	ClauseKindScope       ClauseKind = "clause_scope"
	ClauseKindExpiry      ClauseKind = "clause_expiry"
	ClauseKindTermination ClauseKind = "clause_termination"
)

// ClauseAction is the change instruction a membership clause carries.
type ClauseAction string

const (
	ActionAdd    ClauseAction = "add"
	ActionRemove ClauseAction = "remove"
	ActionUpdate ClauseAction = "update"
)

// ClausePos locates a clause within the amendment document.
type ClausePos string

const (
	PosMainBody ClausePos = "mainbody"
	PosAnnex    ClausePos = "annex"
	PosAppendix ClausePos = "appendix"
)

// ExpiryType selects how an expiry clause determines the contract's
// effective expiry date.
type ExpiryType string

const (
	// ExpiryFixedDate expires on a fixed date.
	ExpiryFixedDate ExpiryType = "fixed_date"
	// ExpiryLinkedToContract expires together with another contract.
	ExpiryLinkedToContract ExpiryType = "linked_to_contract"
	// ExpiryLatestOfChildrenOrFixedDate expires at the later of a fixed date
	// and the latest expiry among the contract's direct child contracts.
	ExpiryLatestOfChildrenOrFixedDate ExpiryType = "latest_of_children_or_fixed_date"
)

// ClauseData is the closed sum of structured clause payloads. Consumers
// dispatch on the concrete type (or Kind) with an exhaustive switch.
type ClauseData interface {
	Kind() ClauseKind
}

// TextClauseData is a clause without structured data beyond its text.
type TextClauseData struct{}

// Kind implements ClauseData
func (TextClauseData) Kind() ClauseKind { return ClauseKindText }

// EntityClauseData adds, removes or replaces an entity on the contract.
// NewEntityID is the target for add/update; OldEntityID is the displaced
// target for remove/update.
type EntityClauseData struct {
	Action      ClauseAction `json:"action"`
	NewEntityID uuid.UUID    `json:"new_entity_id"`
	OldEntityID *uuid.UUID   `json:"old_entity_id,omitempty"`
}

// Kind implements ClauseData
func (EntityClauseData) Kind() ClauseKind { return ClauseKindEntity }

// ScopeClauseData adds, removes or replaces a scope on the contract.
type ScopeClauseData struct {
	Action     ClauseAction `json:"action"`
	NewScopeID uuid.UUID    `json:"new_scope_id"`
	OldScopeID *uuid.UUID   `json:"old_scope_id,omitempty"`
}

// Kind implements ClauseData
func (ScopeClauseData) Kind() ClauseKind { return ClauseKindScope }

// ExpiryClauseData declares how the contract's expiry date is determined.
// ExpiryDate is required for fixed_date and latest_of_children_or_fixed_date;
// LinkedContractID is required for linked_to_contract. The resolver treats a
// violated requirement as a data anomaly, not an input error.
type ExpiryClauseData struct {
	ExpiryType       ExpiryType `json:"expiry_type"`
	ExpiryDate       *time.Time `json:"expiry_date,omitempty"`
	LinkedContractID *uuid.UUID `json:"linked_contract_id,omitempty"`
}

// Kind implements ClauseData
func (ExpiryClauseData) Kind() ClauseKind { return ClauseKindExpiry }

// TerminationClauseData terminates the contract on an explicit date. When an
// applicable amendment carries one, it overrides any expiry clause chain.
type TerminationClauseData struct {
	TerminationDate time.Time `json:"termination_date"`
}

// Kind implements ClauseData
func (TerminationClauseData) Kind() ClauseKind { return ClauseKindTermination }

// Clause is a single typed change instruction within an amendment. The
// structured payload is persisted as a tagged JSON document and decoded into
// Data through the clause registry; Data is nil only for rows whose payload
// failed to decode.
type Clause struct {
	shared.BaseEntity
	AmendmentID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClauseKind       ClauseKind `gorm:"type:varchar(50);not null;index"`
	Pos              ClausePos  `gorm:"type:varchar(20);not null;default:'mainbody'"`
	Ref              string     `gorm:"type:varchar(100)"` // numbering within the document, e.g. "3.2(a)"
	Text             string     `gorm:"type:text"`
	ReviewComments   string     `gorm:"type:text"`
	Remarks          string     `gorm:"type:text"`
	AppliedToScopeID *uuid.UUID `gorm:"type:uuid;index"` // nil means the clause applies globally
	RawData          string     `gorm:"column:data;type:jsonb;not null;default:'{}'"`

	Data ClauseData `gorm:"-"`

	// Amendment is the owning amendment, populated by the ledger accessor so
	// resolvers can test applicability without a second fetch.
	Amendment *Amendment `gorm:"-"`
}

// TableName returns the table name for GORM
func (Clause) TableName() string {
	return "clauses"
}

// NewClause creates a clause of the given kind with its structured payload
func NewClause(amendmentID uuid.UUID, pos ClausePos, data ClauseData) (*Clause, error) {
	if amendmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AMENDMENT", "Clause must belong to an amendment")
	}
	if data == nil {
		return nil, shared.NewDomainError("INVALID_CLAUSE_DATA", "Clause payload is required")
	}
	if pos == "" {
		pos = PosMainBody
	}

	return &Clause{
		BaseEntity:  shared.NewBaseEntity(),
		AmendmentID: amendmentID,
		ClauseKind:  data.Kind(),
		Pos:         pos,
		Data:        data,
	}, nil
}

// AppliedToScope sets the scope the clause is restricted to
func (c *Clause) AppliedToScope(scopeID uuid.UUID) {
	c.AppliedToScopeID = &scopeID
	c.UpdatedAt = time.Now()
}
