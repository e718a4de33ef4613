package shared

import "errors"

// Caller-visible error taxonomy. Everything the marketplace can fail with is
// one of these; anything else is treated as an internal failure and never
// leaks storage detail to the caller.
var (
	// common errors
	ErrNotFound = errors.New("not found")

	// auth-specific errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// registration/validation errors
	ErrConflict        = errors.New("already exists")
	ErrInvalidArgument = errors.New("invalid argument")

	// purchase-specific errors
	ErrInsufficientFunds = errors.New("not enough money")
	ErrAlreadySold       = errors.New("book already sold")
)
