package store

import (
	"context"
	"database/sql"

	"github.com/quadrantio/quadrant-api/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Create saves a new user and fills in its assigned ID.
	// Returns ErrEmailExists, ErrUsernameExists or ErrPhoneNumberExists when
	// the corresponding unique constraint is violated.
	Create(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
