package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested consultation does not exist.
	ErrNotFound = errors.New("consultation not found")

	// ErrVersionNotFound is returned when a consultation exists but the
	// requested version number was never archived.
	ErrVersionNotFound = errors.New("consultation version not found")

	// ErrVersionConflict is returned when an append targets a version number
	// that is already archived for the consultation. It signals a concurrent
	// writer won the race; callers should re-read current state and retry.
	ErrVersionConflict = errors.New("consultation version already exists")
)
