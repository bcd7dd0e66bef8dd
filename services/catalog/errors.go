package catalog

import "errors"

// Failure classes surfaced by the catalog.
var (
	ErrValidation       = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("service not found")
)
