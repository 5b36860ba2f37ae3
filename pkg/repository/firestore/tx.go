package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// fsTx adapts a native Firestore transaction to interfaces.Tx
type fsTx struct {
	tx       *firestore.Transaction
	client   *firestore.Client
	slotRepo *slotRepository
	swapRepo *swapRequestRepository
}

var _ interfaces.Tx = &fsTx{}

func (t *fsTx) GetSlot(ctx context.Context, id types.SlotID) (*model.Slot, error) {
	ref := t.client.Collection(t.slotRepo.slotsCollection()).Doc(id.String())
	doc, err := t.tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "slot not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get slot in transaction", goerr.V("id", id))
	}

	var slot model.Slot
	if err := doc.DataTo(&slot); err != nil {
		return nil, goerr.Wrap(err, "failed to decode slot", goerr.V("id", id))
	}
	return &slot, nil
}

func (t *fsTx) PutSlot(ctx context.Context, slot *model.Slot) error {
	ref := t.client.Collection(t.slotRepo.slotsCollection()).Doc(slot.ID.String())
	if err := t.tx.Set(ref, slot); err != nil {
		return goerr.Wrap(err, "failed to put slot in transaction", goerr.V("id", slot.ID))
	}
	return nil
}

func (t *fsTx) DeleteSlot(ctx context.Context, id types.SlotID) error {
	ref := t.client.Collection(t.slotRepo.slotsCollection()).Doc(id.String())
	if err := t.tx.Delete(ref); err != nil {
		return goerr.Wrap(err, "failed to delete slot in transaction", goerr.V("id", id))
	}
	return nil
}

func (t *fsTx) GetSwapRequest(ctx context.Context, id types.SwapRequestID) (*model.SwapRequest, error) {
	ref := t.client.Collection(t.swapRepo.swapRequestsCollection()).Doc(id.String())
	doc, err := t.tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "swap request not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get swap request in transaction", goerr.V("id", id))
	}

	var req model.SwapRequest
	if err := doc.DataTo(&req); err != nil {
		return nil, goerr.Wrap(err, "failed to decode swap request", goerr.V("id", id))
	}
	return &req, nil
}

func (t *fsTx) PutSwapRequest(ctx context.Context, req *model.SwapRequest) error {
	ref := t.client.Collection(t.swapRepo.swapRequestsCollection()).Doc(req.ID.String())
	if err := t.tx.Set(ref, req); err != nil {
		return goerr.Wrap(err, "failed to put swap request in transaction", goerr.V("id", req.ID))
	}
	return nil
}

func (t *fsTx) FindPendingSwapsBySlots(ctx context.Context, slotIDs []types.SlotID) ([]*model.SwapRequest, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(slotIDs))
	for i, id := range slotIDs {
		ids[i] = id.String()
	}

	col := t.client.Collection(t.swapRepo.swapRequestsCollection())
	queries := []firestore.Query{
		col.Where("Status", "==", types.SwapStatusPending.String()).Where("RequesterSlotID", "in", ids),
		col.Where("Status", "==", types.SwapStatusPending.String()).Where("ResponderSlotID", "in", ids),
	}

	seen := make(map[types.SwapRequestID]bool)
	var found []*model.SwapRequest
	for _, q := range queries {
		iter := t.tx.Documents(q)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return nil, goerr.Wrap(err, "failed to query pending swap requests")
			}

			var req model.SwapRequest
			if err := doc.DataTo(&req); err != nil {
				iter.Stop()
				return nil, goerr.Wrap(err, "failed to decode swap request", goerr.V("doc_id", doc.Ref.ID))
			}
			if !seen[req.ID] {
				seen[req.ID] = true
				found = append(found, &req)
			}
		}
		iter.Stop()
	}

	return found, nil
}
