package services

import "errors"

// Sentinel errors for the workflow and ledger. Controllers map these to HTTP
// status codes; everything else is treated as a store failure.
var (
	// ErrValidation marks bad input shape or range.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown id, including ids belonging to another
	// organization.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock is returned when an approval would overdraw the
	// item's stock. The request and the item are left untouched.
	ErrInsufficientStock = errors.New("the requested quantity exceeds item stock")

	// ErrAlreadyResolved is returned when resolving a request that has
	// already reached a terminal state.
	ErrAlreadyResolved = errors.New("item request has already been resolved")
)

// validationError wraps a human-readable message so callers can still match
// with errors.Is(err, ErrValidation).
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

// Validationf builds a validation error with a caller-facing message.
func Validationf(msg string) error {
	return &validationError{msg: msg}
}
