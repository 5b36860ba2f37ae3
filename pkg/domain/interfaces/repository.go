package interfaces

import (
	"context"
)

// Repository defines the interface for data persistence
type Repository interface {
	Slot() SlotRepository
	SwapRequest() SwapRequestRepository
	User() UserRepository

	// RunTransaction executes fn as a single all-or-nothing unit across the
	// slot and swap request stores. Either every write issued through the Tx
	// handle is applied, or none is. Within fn all reads must be issued
	// before the first write (the Firestore backend enforces this).
	//
	// If the backing store aborts the unit because of a concurrent writer,
	// the returned error wraps ErrTxConflict and fn may be re-invoked as if
	// freshly started; no partial state leaks between attempts.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	Close() error
}
