package user

import "errors"

// Failure classes surfaced by account operations.
var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateAccount   = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("account not found")
)
