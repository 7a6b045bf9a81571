package contract

import (
	"strings"

	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EntityGroup groups legal entities (e.g. all subsidiaries of one group company)
type EntityGroup struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(200);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (EntityGroup) TableName() string {
	return "entity_groups"
}

// Entity is a legal entity that can be party to a contract
type Entity struct {
	shared.BaseEntity
	Name     string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName string     `gorm:"type:varchar(500)"`
	GroupID  *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Entity) TableName() string {
	return "entities"
}

// NewEntity creates a new legal entity
func NewEntity(name, fullName string, groupID *uuid.UUID) (*Entity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Entity name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Entity name cannot exceed 200 characters")
	}

	return &Entity{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		FullName:   strings.TrimSpace(fullName),
		GroupID:    groupID,
	}, nil
}

// NewEntityGroup creates a new entity group
func NewEntityGroup(name string) (*EntityGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Entity group name cannot be empty")
	}

	return &EntityGroup{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
