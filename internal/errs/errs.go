// Package errs contains sentinel errors shared across repositories, services
// and the HTTP layer for stable error mapping.
package errs

import "errors"

var (
	// ErrInvalidInput indicates malformed or out-of-range request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a state or quantity precondition was violated by
	// concurrent or stale state. The caller may retry after re-reading.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState indicates the requested lifecycle transition is not
	// legal from the current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrForbidden indicates the actor's role does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyExists indicates a unique constraint violation (e.g. username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")
)
