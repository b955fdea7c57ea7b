package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidRole indicates a reference to a role that does not exist.
	ErrInvalidRole = errors.New("invalid role")
	// ErrUnauthorized indicates a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates missing permissions for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation indicates request payload validation failure.
	ErrValidation = errors.New("validation failed")
)
