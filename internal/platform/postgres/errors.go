package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quadrantio/quadrant-api/internal/store"
)

// PostgreSQL error codes.
const uniqueViolationCode = "23505"

// Unique constraint names from the users table schema.
const (
	usersEmailConstraint    = "users_email_key"
	usersUsernameConstraint = "users_username_key"
	usersPhoneConstraint    = "users_phone_number_key"
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// mapUserConstraintError translates a unique violation on the users table
// into the matching store sentinel. Unknown violations fall back to the
// generic store.ErrDuplicate.
func mapUserConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}

	switch pgErr.ConstraintName {
	case usersEmailConstraint:
		return store.ErrEmailExists
	case usersUsernameConstraint:
		return store.ErrUsernameExists
	case usersPhoneConstraint:
		return store.ErrPhoneNumberExists
	default:
		return store.ErrDuplicate
	}
}
