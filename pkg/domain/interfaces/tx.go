package interfaces

import (
	"context"

	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// Tx is the handle passed to Repository.RunTransaction. All operations are
// scoped to the surrounding unit of work.
type Tx interface {
	// GetSlot retrieves a slot by ID. Returns an error wrapping ErrNotFound
	// if the slot does not exist.
	GetSlot(ctx context.Context, id types.SlotID) (*model.Slot, error)

	// PutSlot writes the whole slot record
	PutSlot(ctx context.Context, slot *model.Slot) error

	// DeleteSlot removes a slot as part of the unit of work. Deleting a
	// slot that does not exist is not an error; callers check existence
	// with GetSlot first.
	DeleteSlot(ctx context.Context, id types.SlotID) error

	// GetSwapRequest retrieves a swap request by ID. Returns an error
	// wrapping ErrNotFound if the request does not exist.
	GetSwapRequest(ctx context.Context, id types.SwapRequestID) (*model.SwapRequest, error)

	// PutSwapRequest writes the whole swap request record
	PutSwapRequest(ctx context.Context, req *model.SwapRequest) error

	// FindPendingSwapsBySlots returns every PENDING swap request that
	// references any of the given slots, in either role.
	FindPendingSwapsBySlots(ctx context.Context, slotIDs []types.SlotID) ([]*model.SwapRequest, error)
}
