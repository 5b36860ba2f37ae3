package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// memTx buffers writes until the surrounding unit of work commits. Reads see
// buffered writes first so a unit observes its own effects.
type memTx struct {
	store       *Memory
	slotWrites  map[types.SlotID]*model.Slot
	slotDeletes map[types.SlotID]bool
	swapWrites  map[types.SwapRequestID]*model.SwapRequest
}

var _ interfaces.Tx = &memTx{}

func (tx *memTx) GetSlot(ctx context.Context, id types.SlotID) (*model.Slot, error) {
	if tx.slotDeletes[id] {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "slot not found", goerr.V("id", id))
	}
	if slot, ok := tx.slotWrites[id]; ok {
		return copySlot(slot), nil
	}
	slot, ok := tx.store.slots[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "slot not found", goerr.V("id", id))
	}
	return copySlot(slot), nil
}

func (tx *memTx) PutSlot(ctx context.Context, slot *model.Slot) error {
	delete(tx.slotDeletes, slot.ID)
	tx.slotWrites[slot.ID] = copySlot(slot)
	return nil
}

func (tx *memTx) DeleteSlot(ctx context.Context, id types.SlotID) error {
	delete(tx.slotWrites, id)
	tx.slotDeletes[id] = true
	return nil
}

func (tx *memTx) GetSwapRequest(ctx context.Context, id types.SwapRequestID) (*model.SwapRequest, error) {
	if req, ok := tx.swapWrites[id]; ok {
		return copySwapRequest(req), nil
	}
	req, ok := tx.store.swaps[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "swap request not found", goerr.V("id", id))
	}
	return copySwapRequest(req), nil
}

func (tx *memTx) PutSwapRequest(ctx context.Context, req *model.SwapRequest) error {
	tx.swapWrites[req.ID] = copySwapRequest(req)
	return nil
}

func (tx *memTx) FindPendingSwapsBySlots(ctx context.Context, slotIDs []types.SlotID) ([]*model.SwapRequest, error) {
	combined := make(map[types.SwapRequestID]*model.SwapRequest, len(tx.store.swaps))
	for id, req := range tx.store.swaps {
		combined[id] = req
	}
	for id, req := range tx.swapWrites {
		combined[id] = req
	}

	var found []*model.SwapRequest
	for _, req := range combined {
		if req.Status != types.SwapStatusPending {
			continue
		}
		for _, slotID := range slotIDs {
			if req.References(slotID) {
				found = append(found, copySwapRequest(req))
				break
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].CreatedAt.Before(found[j].CreatedAt)
	})
	return found, nil
}
