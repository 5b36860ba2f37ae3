package interfaces

import (
	"context"

	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// SwapRequestRepository defines read access to swap requests. Requests are
// created and mutated only inside the negotiation engine's unit of work;
// they are never deleted.
type SwapRequestRepository interface {
	// Get retrieves a swap request by ID
	Get(ctx context.Context, id types.SwapRequestID) (*model.SwapRequest, error)

	// ListByResponder retrieves all requests addressed to the user, newest first
	ListByResponder(ctx context.Context, userID types.UserID) ([]*model.SwapRequest, error)

	// ListByRequester retrieves all requests initiated by the user, newest first
	ListByRequester(ctx context.Context, userID types.UserID) ([]*model.SwapRequest, error)

	// FindPendingBySlots returns every PENDING request referencing any of
	// the given slots, in either role.
	FindPendingBySlots(ctx context.Context, slotIDs []types.SlotID) ([]*model.SwapRequest, error)
}
