package interfaces

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrTxConflict indicates a transaction could not commit because of a
	// concurrent writer. Callers may retry the whole unit of work.
	ErrTxConflict = errors.New("transaction conflict")
)
