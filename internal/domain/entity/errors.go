// internal/domain/entity/errors.go
package entity

import (
	"errors"
)

var (
	// ErrRecordNotFound means the registration is unknown to the local store.
	// This is the only error surfaced to API callers as a failure.
	ErrRecordNotFound = errors.New("aircraft record not found")

	// ErrUpstreamUnavailable wraps any external provider failure, including
	// timeouts and malformed payloads. Callers degrade instead of failing.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")

	// ErrConflict means a conditional update lost to a concurrent writer.
	ErrConflict = errors.New("record modified concurrently")
)
