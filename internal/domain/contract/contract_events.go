package contract

import (
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the contract aggregate
const (
	EventContractCreated  = "contract.created"
	EventContractUpdated  = "contract.updated"
	EventAmendmentSigned  = "contract.amendment_signed"
	EventContractLinked   = "contract.linked"
	EventContractUnlinked = "contract.unlinked"
)

// ContractCreatedEvent is published when a contract is created
type ContractCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewContractCreatedEvent creates a new ContractCreatedEvent
func NewContractCreatedEvent(c *Contract) *ContractCreatedEvent {
	return &ContractCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractCreated, "Contract", c.ID),
		Name:            c.Name,
	}
}

// ContractUpdatedEvent is published when a contract's basic data changes
type ContractUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewContractUpdatedEvent creates a new ContractUpdatedEvent
func NewContractUpdatedEvent(c *Contract) *ContractUpdatedEvent {
	return &ContractUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractUpdated, "Contract", c.ID),
		Name:            c.Name,
	}
}

// AmendmentSignedEvent is published when an amendment is recorded for a contract
type AmendmentSignedEvent struct {
	shared.BaseDomainEvent
	AmendmentName string `json:"amendment_name"`
}

// NewAmendmentSignedEvent creates a new AmendmentSignedEvent
func NewAmendmentSignedEvent(c *Contract, amendmentName string) *AmendmentSignedEvent {
	return &AmendmentSignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventAmendmentSigned, "Contract", c.ID),
		AmendmentName:   amendmentName,
	}
}

// ContractLinkChangedEvent is published when a parent-child link is added
// or removed
type ContractLinkChangedEvent struct {
	shared.BaseDomainEvent
	ChildID uuid.UUID `json:"child_id"`
}

// NewContractLinkedEvent creates an event for a new parent->child link
func NewContractLinkedEvent(parentID, childID uuid.UUID) *ContractLinkChangedEvent {
	return &ContractLinkChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractLinked, "Contract", parentID),
		ChildID:         childID,
	}
}

// NewContractUnlinkedEvent creates an event for a removed parent->child link
func NewContractUnlinkedEvent(parentID, childID uuid.UUID) *ContractLinkChangedEvent {
	return &ContractLinkChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventContractUnlinked, "Contract", parentID),
		ChildID:         childID,
	}
}
