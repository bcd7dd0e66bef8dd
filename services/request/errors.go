package request

import "errors"

// Failure classes surfaced by the lifecycle engine. Callers test with
// errors.Is; the HTTP layer maps them onto status codes.
var (
	// ErrValidation marks a missing or malformed field.
	ErrValidation = errors.New("validation error")
	// ErrPermissionDenied marks a caller that is neither the owner nor
	// the assigned provider.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound marks an unknown request ID.
	ErrNotFound = errors.New("request not found")
	// ErrConflict marks a status change rejected by the transition
	// policy.
	ErrConflict = errors.New("status transition not allowed")
)
