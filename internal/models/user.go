package models

import (
	"time"

	"github.com/google/uuid"
)

// Account roles. A role is fixed at registration time.
const (
	RoleRequester = "requester"
	RoleApprover  = "approver"
)

func IsValidRole(role string) bool {
	return role == RoleRequester || role == RoleApprover
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
