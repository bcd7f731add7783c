// Package store defines the persistence interfaces and sentinel errors shared
// by all storage implementations. Concrete implementations live under
// internal/platform.
package store
