package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/quadrantio/quadrant-api/internal/domain"
	"github.com/quadrantio/quadrant-api/internal/service"
	"github.com/quadrantio/quadrant-api/internal/service/auth"
	"github.com/quadrantio/quadrant-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors. Bad credentials and inactive accounts are
	// both 401 so login failures stay indistinguishable.
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrAccountInactive),
		errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized

	// Not found. Non-owned tasks surface as store.ErrTaskNotFound, so
	// ownership violations land here rather than on 403.
	case errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Uniqueness conflicts
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Validation failures
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrAccountInactive):
		return "Invalid credentials"

	case errors.Is(err, service.ErrUnauthenticated):
		return "Authentication required"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already taken"

	case errors.Is(err, store.ErrPhoneNumberExists):
		return "Phone number already registered"

	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCategory):
		return "Validation failed"

	default:
		return "An unexpected error occurred"
	}
}

// RequestViolations converts validator struct errors into field violations so
// request-model failures and domain failures share one 422 response shape.
func RequestViolations(err error) *domain.ValidationError {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return domain.NewValidationError(domain.FieldViolation{
			Field:   "body",
			Message: "invalid request",
		})
	}

	violations := make([]domain.FieldViolation, 0, len(vErrs))
	for _, fe := range vErrs {
		violations = append(violations, domain.FieldViolation{
			Field:   strings.ToLower(fe.Field()),
			Message: validationTagMessage(fe.Tag()),
		})
	}
	return domain.NewValidationError(violations...)
}

// validationTagMessage maps validator tags to user-facing messages.
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "has an invalid value"
	default:
		return "is invalid"
	}
}
