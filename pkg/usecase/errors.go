package usecase

import "errors"

// Sentinel errors for the use case layer. The HTTP layer maps these to
// status codes; none of them is retried automatically except transaction
// conflicts, which are retried inside the engine before surfacing as
// ErrTransactionConflict.
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input")

	// Not found errors
	ErrSlotNotFound        = errors.New("slot not found")
	ErrSwapRequestNotFound = errors.New("swap request not found")
	ErrUserNotFound        = errors.New("user not found")

	// State conflict errors
	ErrNotSlotOwner     = errors.New("you do not own the slot you are offering")
	ErrSelfSwap         = errors.New("you cannot swap with your own slot")
	ErrSlotNotSwappable = errors.New("one or both slots are not currently swappable")
	ErrConflictingSwap  = errors.New("a pending swap request involving these slots already exists")
	ErrAlreadyResolved  = errors.New("this swap request is no longer pending")
	ErrSlotLocked       = errors.New("slot is locked by a pending swap negotiation")
	ErrStatusNotAllowed = errors.New("slot status can only be set to BUSY or SWAPPABLE")

	// Access control errors
	ErrNotAuthorized = errors.New("not authorized to perform this operation")

	// Concurrency errors, surfaced after retries are exhausted
	ErrTransactionConflict = errors.New("operation conflicted with concurrent updates, please try again")
)
