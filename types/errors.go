package types

import "fmt"

// ValidationError reports missing or malformed input. The caller has to fix
// the request; nothing is retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func NewValidationError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

// PersistenceError wraps a failed store write. A computed result may still be
// usable even when it could not be persisted.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
