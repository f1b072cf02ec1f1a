package domain

import "errors"

// Error taxonomy. Callers classify with errors.Is; everything here is
// recoverable and local to the operation that raised it.
var (
	// ErrValidation covers malformed user input (bad time string, empty text).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers lookups of unknown or already-inactive reminders.
	ErrNotFound = errors.New("not found")
	// ErrStorage covers persistence failures.
	ErrStorage = errors.New("storage error")
	// ErrDelivery covers failed pushes to the chat transport.
	ErrDelivery = errors.New("delivery failed")
)
