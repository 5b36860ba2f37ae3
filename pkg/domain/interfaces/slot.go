package interfaces

import (
	"context"

	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// SlotRepository defines the interface for Slot data access outside of
// transactions. Status transitions involving SWAP_PENDING go through the
// negotiation engine's unit of work instead.
type SlotRepository interface {
	// Create creates a new slot with a generated ID
	Create(ctx context.Context, slot *model.Slot) (*model.Slot, error)

	// Get retrieves a slot by ID
	Get(ctx context.Context, id types.SlotID) (*model.Slot, error)

	// ListByOwner retrieves all slots of the owner, earliest start first
	ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Slot, error)

	// ListSwappable retrieves all SWAPPABLE slots not owned by excludeOwner
	ListSwappable(ctx context.Context, excludeOwner types.UserID) ([]*model.Slot, error)

	// Update updates an existing slot as a whole-record write
	Update(ctx context.Context, slot *model.Slot) (*model.Slot, error)

	// Delete deletes a slot by ID
	Delete(ctx context.Context, id types.SlotID) error
}
