package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Specific violations are carried by ValidationError, which matches
	// this sentinel under errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCategory is returned when a task category is not one of
	// the four Eisenhower-matrix quadrants.
	ErrInvalidCategory = errors.New("invalid task category")
)

// FieldViolation describes a single validation rule that a field failed.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field violation found in an entity or
// draft so callers can report all of them at once.
type ValidationError struct {
	Violations []FieldViolation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(fields, "; ")
}

// Is reports whether target is ErrValidation, so errors.Is(err, ErrValidation)
// matches any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError from the given violations.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}
