package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionSubmit = "submit"
	ActionAccept = "accept"
	ActionReject = "reject"
	ActionClose  = "close"
)

// Audit entity kinds
const (
	EntityItem    = "item"
	EntityRequest = "request"
	EntityUser    = "user"
)

func IsValidAction(action string) bool {
	switch action {
	case ActionCreate, ActionUpdate, ActionDelete, ActionSubmit, ActionAccept, ActionReject, ActionClose:
		return true
	}
	return false
}

// AuditEntry is an immutable record of one state-changing action. Entries are
// written in the same transaction as the mutation they record and are never
// updated or deleted.
//
// Detail is an open-ended key/value map; its content varies by action:
// accept/close carry previous_quantity and new_quantity, update carries
// old_values and new_values, and every item-related entry carries item_name.
type AuditEntry struct {
	ID         uuid.UUID  `json:"id"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Detail     any        `json:"detail,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
