// Package common defines shared constants and sentinel errors used across
// the check-tracking core. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Remote store errors.
	ErrNoCredential    = errors.New("remote credential not configured")
	ErrVersionConflict = errors.New("version conflict")
	ErrRemote          = errors.New("remote store error")

	// Synchronizer errors.
	ErrSaveInProgress = errors.New("another save is already in progress")

	// Snapshot errors.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// PersistenceError reports a failed attempt to durably commit a mutation.
// The in-memory state has already been reconciled by the caller (rolled
// back for add/update/delete, left mutated for import and sweep).
type PersistenceError struct {
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %v", e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// UserMessage translates a persistence failure into a short human-readable
// explanation, distinguishing the cases the UI must tell apart.
func (e *PersistenceError) UserMessage() string {
	switch {
	case errors.Is(e.Cause, ErrNoCredential):
		return "no remote credential configured; set a token in settings"
	case errors.Is(e.Cause, ErrSaveInProgress):
		return "another save is already in progress; try again"
	case errors.Is(e.Cause, ErrVersionConflict):
		return "remote data changed since last load; reload and retry"
	default:
		return "network or remote API error; the change was not saved"
	}
}
