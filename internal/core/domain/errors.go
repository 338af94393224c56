package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a record looked up by its own identifier does not exist.
// Lookups by parent identifier never return it.
var ErrNotFound = errors.New("not found")

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError reports input that failed shape or range checks.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError with a single violation.
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Rule: rule, Message: message}}}
}

// StoreError wraps a failure of the persistence medium.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
