package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quadrantio/quadrant-api/internal/store"
)

// Authenticator verifies a username/password pair and issues a session token.
type Authenticator interface {
	// Authenticate returns a signed session token for the user, or
	// ErrInvalidCredentials / ErrAccountInactive. Unknown usernames and wrong
	// passwords are indistinguishable in the returned error.
	Authenticate(ctx context.Context, username, password string) (string, error)
}

type authenticator struct {
	userStore  store.UserStore
	verifier   PasswordVerifier
	jwtService JWTService
	logger     *slog.Logger
}

// NewAuthenticator creates an Authenticator backed by the given user store,
// password verifier and token service.
func NewAuthenticator(
	userStore store.UserStore,
	verifier PasswordVerifier,
	jwtService JWTService,
	logger *slog.Logger,
) Authenticator {
	return &authenticator{
		userStore:  userStore,
		verifier:   verifier,
		jwtService: jwtService,
		logger:     logger.With("component", "authenticator"),
	}
}

// Authenticate implements the Authenticator interface. Token issuance is
// stateless; nothing is persisted on success.
func (a *authenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := a.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			a.logger.Debug("login attempt for unknown username", "username", username)
			return "", ErrInvalidCredentials
		}
		a.logger.Error("failed to look up user for login", "error", err, "username", username)
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := a.verifier.Compare(user.HashedPassword, password); err != nil {
		a.logger.Debug("login attempt with wrong password", "username", username)
		return "", ErrInvalidCredentials
	}

	if !user.IsActive {
		a.logger.Debug("login attempt for inactive account", "username", username)
		return "", ErrAccountInactive
	}

	token, err := a.jwtService.GenerateToken(ctx, Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		a.logger.Error("failed to generate session token", "error", err, "user_id", user.ID)
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return token, nil
}
