package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/quadrantio/quadrant-api/internal/domain"
	"github.com/quadrantio/quadrant-api/internal/service/auth"
	"github.com/quadrantio/quadrant-api/internal/store"
)

// RegistrationDraft holds the caller-supplied fields for creating an account.
type RegistrationDraft struct {
	Email       string
	Username    string
	FirstName   string
	LastName    string
	Password    string
	PhoneNumber string
}

// UserService provides account operations.
type UserService interface {
	// Register hashes the password, persists a new active user with the
	// default role and returns the stored record. Returns the store's
	// duplicate sentinels when email, username or phone number are taken.
	Register(ctx context.Context, draft RegistrationDraft) (*domain.User, error)
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
	runTx     func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewUserService creates a UserService backed by the given store and hasher.
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, db *sql.DB, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With("component", "user_service"),
		runTx:     store.RunInTransaction,
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register. The plaintext password is hashed
// before the domain entity is constructed and is never persisted.
func (s *UserServiceImpl) Register(ctx context.Context, draft RegistrationDraft) (*domain.User, error) {
	hashed, err := s.hasher.Hash(draft.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(
		draft.Email,
		draft.Username,
		draft.FirstName,
		draft.LastName,
		hashed,
		draft.PhoneNumber,
	)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if store.IsDuplicate(err) {
			s.logger.Debug("registration with taken identifier", "username", draft.Username)
			return nil, err
		}
		s.logger.Error("failed to create user", "error", err, "username", draft.Username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}
