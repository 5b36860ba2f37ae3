package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// SlotWithOwner pairs a slot with its owner's display profile. Owner is nil
// when the owner never registered a profile.
type SlotWithOwner struct {
	Slot  *model.Slot
	Owner *model.User
}

// SwapRequestDetail attaches the referenced slot and user summaries to a
// swap request for display. Slot fields are nil when a slot has been
// deleted since the request was created.
type SwapRequestDetail struct {
	Request       *model.SwapRequest
	RequesterSlot *model.Slot
	ResponderSlot *model.Slot
	Requester     *model.User
	Responder     *model.User
}

// ListSwappableSlots returns every SWAPPABLE slot not owned by the caller,
// with owner identity attached for display.
func (uc *SwapUseCase) ListSwappableSlots(ctx context.Context, callerID types.UserID) ([]*SlotWithOwner, error) {
	if err := callerID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid caller", goerr.V("cause", err))
	}

	slots, err := uc.repo.Slot().ListSwappable(ctx, callerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list swappable slots")
	}

	ownerIDs := make([]types.UserID, 0, len(slots))
	seen := map[types.UserID]bool{}
	for _, slot := range slots {
		if !seen[slot.OwnerID] {
			seen[slot.OwnerID] = true
			ownerIDs = append(ownerIDs, slot.OwnerID)
		}
	}

	owners, err := uc.repo.User().GetByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve slot owners")
	}

	results := make([]*SlotWithOwner, 0, len(slots))
	for _, slot := range slots {
		results = append(results, &SlotWithOwner{
			Slot:  slot,
			Owner: owners[slot.OwnerID],
		})
	}
	return results, nil
}

// ListIncomingRequests returns all requests addressed to the user, newest
// first, with slot and user summaries attached.
func (uc *SwapUseCase) ListIncomingRequests(ctx context.Context, userID types.UserID) ([]*SwapRequestDetail, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid user", goerr.V("cause", err))
	}
	reqs, err := uc.repo.SwapRequest().ListByResponder(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incoming requests")
	}
	return uc.buildDetails(ctx, reqs)
}

// ListOutgoingRequests returns all requests initiated by the user, newest
// first, with slot and user summaries attached.
func (uc *SwapUseCase) ListOutgoingRequests(ctx context.Context, userID types.UserID) ([]*SwapRequestDetail, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid user", goerr.V("cause", err))
	}
	reqs, err := uc.repo.SwapRequest().ListByRequester(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list outgoing requests")
	}
	return uc.buildDetails(ctx, reqs)
}

func (uc *SwapUseCase) buildDetails(ctx context.Context, reqs []*model.SwapRequest) ([]*SwapRequestDetail, error) {
	userIDs := make([]types.UserID, 0, len(reqs)*2)
	seen := map[types.UserID]bool{}
	for _, req := range reqs {
		for _, id := range []types.UserID{req.RequesterID, req.ResponderID} {
			if !seen[id] {
				seen[id] = true
				userIDs = append(userIDs, id)
			}
		}
	}

	users, err := uc.repo.User().GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve request users")
	}

	eg, egCtx := errgroup.WithContext(ctx)
	details := make([]*SwapRequestDetail, len(reqs))
	for i, req := range reqs {
		detail := &SwapRequestDetail{
			Request:   req,
			Requester: users[req.RequesterID],
			Responder: users[req.ResponderID],
		}
		details[i] = detail

		eg.Go(func() error {
			slot, err := uc.lookupSlot(egCtx, req.RequesterSlotID)
			if err != nil {
				return err
			}
			detail.RequesterSlot = slot
			return nil
		})
		eg.Go(func() error {
			slot, err := uc.lookupSlot(egCtx, req.ResponderSlotID)
			if err != nil {
				return err
			}
			detail.ResponderSlot = slot
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

// lookupSlot tolerates deleted slots: requests are append-only history and
// may outlive the slots they reference.
func (uc *SwapUseCase) lookupSlot(ctx context.Context, id types.SlotID) (*model.Slot, error) {
	slot, err := uc.repo.Slot().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to resolve slot", goerr.V("id", id))
	}
	return slot, nil
}
