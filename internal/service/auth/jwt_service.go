package auth

import (
	"context"
	"time"
)

// Identity is the authenticated principal resolved from a validated token.
// Role is an opaque string carried for future authorization rules; no core
// operation inspects it today.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Claims is the validated content of a session token.
type Claims struct {
	UserID    int64
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string // jti
}

// Identity returns the principal the claims describe.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Username: c.Username, Role: c.Role}
}

// JWTService manages signed session tokens.
type JWTService interface {
	// GenerateToken creates a signed token embedding the identity, an
	// issued-at timestamp and a fixed expiry.
	GenerateToken(ctx context.Context, identity Identity) (string, error)

	// ValidateToken verifies the token's signature and time claims and
	// extracts the claims. Returns ErrExpiredToken, ErrTokenNotYetValid or
	// ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
