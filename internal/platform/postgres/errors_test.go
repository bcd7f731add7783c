package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/quadrantio/quadrant-api/internal/store"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(uniqueViolation(usersEmailConstraint)))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", uniqueViolation(usersEmailConstraint))))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("not a pg error")))
}

func TestMapUserConstraintError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		constraint string
		want       error
	}{
		{usersEmailConstraint, store.ErrEmailExists},
		{usersUsernameConstraint, store.ErrUsernameExists},
		{usersPhoneConstraint, store.ErrPhoneNumberExists},
		{"some_other_key", store.ErrDuplicate},
	}

	for _, tc := range cases {
		got := mapUserConstraintError(uniqueViolation(tc.constraint))
		assert.ErrorIs(t, got, tc.want, "constraint %s", tc.constraint)
	}

	// Non-unique-violation errors pass through untouched.
	plain := errors.New("connection reset")
	assert.Same(t, plain, mapUserConstraintError(plain))
}
