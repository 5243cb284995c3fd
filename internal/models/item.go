package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a catalog entry for a type of physical stock. Quantity is the
// on-hand count and must never go negative; the only mutators are the request
// lifecycle (accept/close) and direct approver edits.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
