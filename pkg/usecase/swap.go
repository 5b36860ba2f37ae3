package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"github.com/slotswapper/slotswapper/pkg/utils/logging"
)

// maxTxAttempts bounds transparent retries of a unit of work that aborted
// because of a concurrent writer.
const maxTxAttempts = 3

// SwapUseCase is the swap negotiation engine. It is the only component that
// writes Slot.Status, Slot.OwnerID and SwapRequest.Status, and it does so
// exclusively inside multi-record transactions.
//
// The invariant maintained across every operation: a slot has status
// SWAP_PENDING if and only if at least one PENDING swap request references
// it in either role.
type SwapUseCase struct {
	repo interfaces.Repository
}

func NewSwapUseCase(repo interfaces.Repository) *SwapUseCase {
	return &SwapUseCase{repo: repo}
}

// runTx executes fn as a unit of work, retrying transparently when the
// store reports a conflicting concurrent transaction. Each retry re-invokes
// fn as if freshly started.
func (uc *SwapUseCase) runTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := uc.repo.RunTransaction(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, interfaces.ErrTxConflict) {
			return err
		}
		lastErr = err
		logging.From(ctx).Warn("retrying conflicted swap transaction", "attempt", attempt+1)
	}
	return goerr.Wrap(ErrTransactionConflict, "transaction conflict persisted",
		goerr.V("attempts", maxTxAttempts),
		goerr.V("cause", lastErr))
}

// CreateSwapRequest proposes exchanging the requester's slot for the desired
// slot. On success both slots are SWAP_PENDING and the returned request is
// PENDING; on any precondition failure nothing is mutated.
func (uc *SwapUseCase) CreateSwapRequest(ctx context.Context, requesterID types.UserID, offeredSlotID, desiredSlotID types.SlotID) (*model.SwapRequest, error) {
	if err := requesterID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid requester", goerr.V("cause", err))
	}
	if err := offeredSlotID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid offered slot ID", goerr.V("cause", err))
	}
	if err := desiredSlotID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid desired slot ID", goerr.V("cause", err))
	}
	if offeredSlotID == desiredSlotID {
		return nil, goerr.Wrap(ErrSelfSwap, "offered and desired slots are the same",
			goerr.V("slot_id", offeredSlotID))
	}

	var created *model.SwapRequest
	err := uc.runTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		created = nil

		offered, err := tx.GetSlot(ctx, offeredSlotID)
		if err != nil {
			return slotLookupError(err, offeredSlotID)
		}
		desired, err := tx.GetSlot(ctx, desiredSlotID)
		if err != nil {
			return slotLookupError(err, desiredSlotID)
		}

		if offered.OwnerID != requesterID {
			return goerr.Wrap(ErrNotSlotOwner, "offered slot has a different owner",
				goerr.V("slot_id", offeredSlotID),
				goerr.V("requester", requesterID))
		}
		if desired.OwnerID == requesterID {
			return goerr.Wrap(ErrSelfSwap, "desired slot belongs to the requester",
				goerr.V("slot_id", desiredSlotID))
		}
		if offered.Status != types.SlotStatusSwappable || desired.Status != types.SlotStatusSwappable {
			return goerr.Wrap(ErrSlotNotSwappable, "both slots must be SWAPPABLE",
				goerr.V("offered_status", offered.Status),
				goerr.V("desired_status", desired.Status))
		}

		// Strict conflict rule: any PENDING request touching either slot,
		// in either role, blocks creation.
		pending, err := tx.FindPendingSwapsBySlots(ctx, []types.SlotID{offeredSlotID, desiredSlotID})
		if err != nil {
			return err
		}
		if len(pending) > 0 {
			return goerr.Wrap(ErrConflictingSwap, "slots are already under negotiation",
				goerr.V("conflicting_request", pending[0].ID))
		}

		now := time.Now().UTC()
		req := &model.SwapRequest{
			ID:              types.NewSwapRequestID(),
			RequesterID:     requesterID,
			RequesterSlotID: offeredSlotID,
			ResponderID:     desired.OwnerID,
			ResponderSlotID: desiredSlotID,
			Status:          types.SwapStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := req.Validate(); err != nil {
			return err
		}
		if err := tx.PutSwapRequest(ctx, req); err != nil {
			return err
		}

		for _, slot := range []*model.Slot{offered, desired} {
			slot.Status = types.SlotStatusSwapPending
			slot.UpdatedAt = now
			if err := tx.PutSlot(ctx, slot); err != nil {
				return err
			}
		}

		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("swap request created",
		"request_id", created.ID,
		"requester", created.RequesterID,
		"responder", created.ResponderID)
	return created, nil
}

// RespondToSwapRequest resolves a PENDING request. Accepting swaps the two
// slots' owners and rejects every other pending request those slots were
// involved in; rejecting releases the slots unless another negotiation still
// holds them. If a referenced slot was deleted mid-negotiation the request
// is auto-rejected and ErrSlotNotFound is returned after the rejection has
// committed.
func (uc *SwapUseCase) RespondToSwapRequest(ctx context.Context, responderID types.UserID, requestID types.SwapRequestID, accept bool) (*model.SwapRequest, error) {
	if err := responderID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid responder", goerr.V("cause", err))
	}
	if err := requestID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid request ID", goerr.V("cause", err))
	}

	var resolved *model.SwapRequest
	var missingSlot bool
	err := uc.runTx(ctx, func(ctx context.Context, tx interfaces.Tx) error {
		resolved = nil
		missingSlot = false

		req, err := tx.GetSwapRequest(ctx, requestID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return goerr.Wrap(ErrSwapRequestNotFound, "no such swap request", goerr.V("id", requestID))
			}
			return err
		}

		if req.ResponderID != responderID {
			return goerr.Wrap(ErrNotAuthorized, "only the responder may resolve this request",
				goerr.V("request_id", requestID),
				goerr.V("responder", req.ResponderID))
		}
		if req.Status != types.SwapStatusPending {
			return goerr.Wrap(ErrAlreadyResolved, "request already resolved",
				goerr.V("request_id", requestID),
				goerr.V("status", req.Status))
		}

		var pair []*model.Slot
		for _, slotID := range req.SlotIDs() {
			slot, err := tx.GetSlot(ctx, slotID)
			if err != nil {
				if errors.Is(err, interfaces.ErrNotFound) {
					missingSlot = true
					continue
				}
				return err
			}
			pair = append(pair, slot)
		}

		// A deleted slot terminates the negotiation: auto-reject whatever
		// remains and report the failure after committing.
		outcome := accept && !missingSlot

		st, err := loadSettlement(ctx, tx, req, pair, outcome)
		if err != nil {
			return err
		}

		if outcome {
			req.Status = types.SwapStatusAccepted
			// Ownership swap is the sole effect that transfers slots.
			pair[0].OwnerID, pair[1].OwnerID = pair[1].OwnerID, pair[0].OwnerID
		} else {
			req.Status = types.SwapStatusRejected
		}

		if err := st.apply(ctx, tx); err != nil {
			return err
		}

		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("swap request resolved",
		"request_id", resolved.ID,
		"status", resolved.Status,
		"auto_rejected", missingSlot)

	if missingSlot {
		return nil, goerr.Wrap(ErrSlotNotFound, "a referenced slot was deleted; request auto-rejected",
			goerr.V("request_id", requestID))
	}
	return resolved, nil
}

func slotLookupError(err error, id types.SlotID) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(ErrSlotNotFound, "no such slot", goerr.V("id", id))
	}
	return err
}
