package models

import (
	"time"

	"github.com/google/uuid"
)

// Request statuses
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
	RequestStatusClosed   = "closed"
)

// Valid status transitions: from -> []to. Rejected and closed are terminal.
var ValidRequestTransitions = map[string][]string{
	RequestStatusPending:  {RequestStatusAccepted, RequestStatusRejected},
	RequestStatusAccepted: {RequestStatusClosed},
	RequestStatusRejected: {},
	RequestStatusClosed:   {},
}

func IsValidTransition(from, to string) bool {
	allowed, ok := ValidRequestTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

func IsValidRequestStatus(status string) bool {
	_, ok := ValidRequestTransitions[status]
	return ok
}

// Request is one requester's ask to borrow a quantity of an item.
// Rows are never deleted; terminal statuses are permanent history.
type Request struct {
	ID           uuid.UUID  `json:"id"`
	RequesterID  uuid.UUID  `json:"requester_id"`
	ItemID       uuid.UUID  `json:"item_id"`
	Quantity     int        `json:"quantity"`
	Status       string     `json:"status"`
	DecisionNote *string    `json:"decision_note,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	DecidedBy    *uuid.UUID `json:"decided_by,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}

// RequestWithItem embeds Request and adds item info to avoid N+1 queries.
type RequestWithItem struct {
	Request
	ItemName     *string `json:"item_name,omitempty"`
	ItemCategory *string `json:"item_category,omitempty"`
}
