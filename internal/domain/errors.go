package domain

import "errors"

var (
	ErrNotFound       = errors.New("drinklog: not found")
	ErrInvalidEntry   = errors.New("drinklog: invalid entry")
	ErrInvalidProfile = errors.New("drinklog: invalid profile")
	ErrDuplicateEntry = errors.New("drinklog: duplicate entry id")
	ErrPersist        = errors.New("drinklog: failed to persist")
)

// ValidationError carries a message that can be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
	kind    error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func entryError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, kind: ErrInvalidEntry}
}

func profileError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, kind: ErrInvalidProfile}
}
