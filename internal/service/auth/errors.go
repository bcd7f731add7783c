package auth

import "errors"

// Common authentication service errors.
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// does not verify.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token's expiry has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token's nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials is returned for both unknown usernames and wrong
	// passwords, so login responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive indicates the account exists and the password
	// matched, but the account has been deactivated.
	ErrAccountInactive = errors.New("account is inactive")
)
