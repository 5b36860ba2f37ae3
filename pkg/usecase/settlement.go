package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"github.com/slotswapper/slotswapper/pkg/utils/logging"
)

// settlement captures everything the cascade needs to settle the slots of a
// resolved request. It is built in a pure read phase (loadSettlement) and
// applied in a pure write phase (apply) so both fit a store that requires
// all transactional reads to precede the first write.
//
// Accept and reject use the same code path: the only difference is whether
// competing requests are invalidated or left standing.
type settlement struct {
	resolved  *model.SwapRequest
	accepted  bool
	pair      []*model.Slot // referenced slots that still exist
	competing []*model.SwapRequest

	// off-pair slots of competing requests, which lose a PENDING reference
	// when those requests are cascade-rejected
	orphans    []*model.Slot
	orphanRefs []*model.SwapRequest
}

func loadSettlement(ctx context.Context, tx interfaces.Tx, resolved *model.SwapRequest, pair []*model.Slot, accepted bool) (*settlement, error) {
	st := &settlement{
		resolved: resolved,
		accepted: accepted,
		pair:     pair,
	}

	pending, err := tx.FindPendingSwapsBySlots(ctx, resolved.SlotIDs())
	if err != nil {
		return nil, err
	}
	for _, req := range pending {
		if req.ID != resolved.ID {
			st.competing = append(st.competing, req)
		}
	}

	if !accepted || len(st.competing) == 0 {
		return st, nil
	}

	// Rejecting the competing requests may orphan slots outside the pair;
	// read them now so the write phase can release them.
	pairIDs := map[types.SlotID]bool{
		resolved.RequesterSlotID: true,
		resolved.ResponderSlotID: true,
	}
	seen := map[types.SlotID]bool{}
	var orphanIDs []types.SlotID
	for _, req := range st.competing {
		for _, slotID := range req.SlotIDs() {
			if pairIDs[slotID] || seen[slotID] {
				continue
			}
			seen[slotID] = true
			orphanIDs = append(orphanIDs, slotID)
		}
	}
	if len(orphanIDs) == 0 {
		return st, nil
	}

	for _, slotID := range orphanIDs {
		slot, err := tx.GetSlot(ctx, slotID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				continue
			}
			return nil, err
		}
		st.orphans = append(st.orphans, slot)
	}

	st.orphanRefs, err = tx.FindPendingSwapsBySlots(ctx, orphanIDs)
	if err != nil {
		return nil, err
	}

	return st, nil
}

// apply writes the resolved request and settles every affected slot. The
// caller has already set the resolved status (and swapped owners on accept).
func (st *settlement) apply(ctx context.Context, tx interfaces.Tx) error {
	now := time.Now().UTC()

	st.resolved.UpdatedAt = now
	if err := tx.PutSwapRequest(ctx, st.resolved); err != nil {
		return err
	}

	if !st.accepted {
		// Release pair slots that no other negotiation holds.
		for _, slot := range st.pair {
			if slot.Status != types.SlotStatusSwapPending {
				continue
			}
			if countPendingRefs(st.competing, slot.ID, map[types.SwapRequestID]bool{st.resolved.ID: true}) > 0 {
				continue
			}
			slot.Status = types.SlotStatusSwappable
			slot.UpdatedAt = now
			if err := tx.PutSlot(ctx, slot); err != nil {
				return err
			}
		}
		return nil
	}

	// Competing requests are invalidated: a slot changed hands or is no
	// longer swappable.
	rejected := map[types.SwapRequestID]bool{st.resolved.ID: true}
	for _, req := range st.competing {
		req.Status = types.SwapStatusRejected
		req.UpdatedAt = now
		rejected[req.ID] = true
		if err := tx.PutSwapRequest(ctx, req); err != nil {
			return err
		}
		logging.From(ctx).Info("competing swap request cascade-rejected",
			"request_id", req.ID,
			"winner", st.resolved.ID)
	}

	// The accepted transaction always wins: both pair slots end up BUSY no
	// matter what state the cascade found them in.
	for _, slot := range st.pair {
		slot.Status = types.SlotStatusBusy
		slot.UpdatedAt = now
		if err := tx.PutSlot(ctx, slot); err != nil {
			return err
		}
	}

	// Off-pair slots of the rejected requests keep SWAP_PENDING only if a
	// surviving negotiation still references them.
	for _, slot := range st.orphans {
		if slot.Status != types.SlotStatusSwapPending {
			continue
		}
		if countPendingRefs(st.orphanRefs, slot.ID, rejected) > 0 {
			continue
		}
		slot.Status = types.SlotStatusSwappable
		slot.UpdatedAt = now
		if err := tx.PutSlot(ctx, slot); err != nil {
			return err
		}
	}

	return nil
}

// countPendingRefs counts PENDING requests referencing the slot, ignoring
// the excluded request IDs.
func countPendingRefs(reqs []*model.SwapRequest, slotID types.SlotID, exclude map[types.SwapRequestID]bool) int {
	n := 0
	for _, req := range reqs {
		if exclude[req.ID] || req.Status != types.SwapStatusPending {
			continue
		}
		if req.References(slotID) {
			n++
		}
	}
	return n
}
