package domain

import "errors"

var (
	// ErrDataUnavailable is returned when neither the progress snapshot nor
	// the master dataset yields any cards. It is fatal at startup.
	ErrDataUnavailable = errors.New("deck data unavailable")

	// ErrPersistenceWrite is returned when the progress snapshot could not
	// be written. The in-memory change that triggered the write still stands.
	ErrPersistenceWrite = errors.New("failed to persist progress")

	// ErrInvalidOperation is returned when a decision is made with no card
	// on screen.
	ErrInvalidOperation = errors.New("invalid operation")
)
