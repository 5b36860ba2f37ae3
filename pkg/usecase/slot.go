package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// SlotUseCase covers owner-facing slot management. It never touches
// SWAP_PENDING: that status belongs to the negotiation engine, and any slot
// carrying it is locked against owner edits and deletion.
type SlotUseCase struct {
	repo interfaces.Repository
}

func NewSlotUseCase(repo interfaces.Repository) *SlotUseCase {
	return &SlotUseCase{repo: repo}
}

// ListSlots returns all slots of the owner, earliest start first
func (uc *SlotUseCase) ListSlots(ctx context.Context, ownerID types.UserID) ([]*model.Slot, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid owner", goerr.V("cause", err))
	}
	slots, err := uc.repo.Slot().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list slots")
	}
	return slots, nil
}

// CreateSlot creates a slot owned by ownerID. Status defaults to BUSY and
// may only be set to an owner-settable value.
func (uc *SlotUseCase) CreateSlot(ctx context.Context, ownerID types.UserID, title string, startTime, endTime time.Time, status types.SlotStatus) (*model.Slot, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid owner", goerr.V("cause", err))
	}

	status = status.Normalize()
	if !status.OwnerSettable() {
		return nil, goerr.Wrap(ErrStatusNotAllowed, "cannot create slot with this status",
			goerr.V("status", status))
	}

	slot := &model.Slot{
		ID:        types.NewSlotID(),
		Title:     title,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    status,
		OwnerID:   ownerID,
	}
	if err := slot.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid slot", goerr.V("cause", err))
	}

	created, err := uc.repo.Slot().Create(ctx, slot)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create slot")
	}
	return created, nil
}

// UpdateSlotInput carries the fields to change; zero values keep the
// current value.
type UpdateSlotInput struct {
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    types.SlotStatus
}

// UpdateSlot edits a slot owned by ownerID. Edits are refused while the
// slot is locked by a pending negotiation.
func (uc *SlotUseCase) UpdateSlot(ctx context.Context, ownerID types.UserID, slotID types.SlotID, input UpdateSlotInput) (*model.Slot, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid owner", goerr.V("cause", err))
	}
	if err := slotID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid slot ID", goerr.V("cause", err))
	}
	if input.Status != "" && !input.Status.OwnerSettable() {
		return nil, goerr.Wrap(ErrStatusNotAllowed, "cannot set this status directly",
			goerr.V("status", input.Status))
	}

	var updated *model.Slot
	err := uc.repo.RunTransaction(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		slot, err := tx.GetSlot(ctx, slotID)
		if err != nil {
			return slotLookupError(err, slotID)
		}
		if slot.OwnerID != ownerID {
			return goerr.Wrap(ErrNotAuthorized, "slot has a different owner", goerr.V("id", slotID))
		}
		if slot.Status == types.SlotStatusSwapPending {
			return goerr.Wrap(ErrSlotLocked, "slot is under negotiation", goerr.V("id", slotID))
		}

		if input.Title != "" {
			slot.Title = input.Title
		}
		if !input.StartTime.IsZero() {
			slot.StartTime = input.StartTime
		}
		if !input.EndTime.IsZero() {
			slot.EndTime = input.EndTime
		}
		if input.Status != "" {
			slot.Status = input.Status
		}
		slot.UpdatedAt = time.Now().UTC()

		if err := slot.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidInput, "invalid slot", goerr.V("cause", err))
		}
		if err := tx.PutSlot(ctx, slot); err != nil {
			return err
		}
		updated = slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteSlot removes a slot owned by ownerID. A slot locked by a pending
// negotiation cannot be deleted; the negotiation must resolve first.
func (uc *SlotUseCase) DeleteSlot(ctx context.Context, ownerID types.UserID, slotID types.SlotID) error {
	if err := ownerID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, "invalid owner", goerr.V("cause", err))
	}
	if err := slotID.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, "invalid slot ID", goerr.V("cause", err))
	}

	return uc.repo.RunTransaction(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		slot, err := tx.GetSlot(ctx, slotID)
		if err != nil {
			return slotLookupError(err, slotID)
		}
		if slot.OwnerID != ownerID {
			return goerr.Wrap(ErrNotAuthorized, "slot has a different owner", goerr.V("id", slotID))
		}
		if slot.Status == types.SlotStatusSwapPending {
			return goerr.Wrap(ErrSlotLocked, "slot is under negotiation", goerr.V("id", slotID))
		}

		// A PENDING request referencing the slot blocks deletion even when
		// the slot's status does not yet say SWAP_PENDING.
		pending, err := tx.FindPendingSwapsBySlots(ctx, []types.SlotID{slotID})
		if err != nil {
			return goerr.Wrap(err, "failed to check pending negotiations", goerr.V("id", slotID))
		}
		if len(pending) > 0 {
			return goerr.Wrap(ErrSlotLocked, "slot is under negotiation", goerr.V("id", slotID))
		}

		if err := tx.DeleteSlot(ctx, slotID); err != nil {
			return goerr.Wrap(err, "failed to delete slot", goerr.V("id", slotID))
		}
		return nil
	})
}
