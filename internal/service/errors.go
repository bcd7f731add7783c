package service

import "errors"

// ErrUnauthenticated is returned when an operation is invoked without a
// resolved identity. It is checked before any store access.
var ErrUnauthenticated = errors.New("unauthenticated")
