package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

type swapRequestRepository struct {
	store *Memory
}

func copySwapRequest(r *model.SwapRequest) *model.SwapRequest {
	copied := *r
	return &copied
}

func (r *swapRequestRepository) Get(ctx context.Context, id types.SwapRequestID) (*model.SwapRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	req, ok := r.store.swaps[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "swap request not found", goerr.V("id", id))
	}
	return copySwapRequest(req), nil
}

func (r *swapRequestRepository) ListByResponder(ctx context.Context, userID types.UserID) ([]*model.SwapRequest, error) {
	return r.list(func(req *model.SwapRequest) bool {
		return req.ResponderID == userID
	})
}

func (r *swapRequestRepository) ListByRequester(ctx context.Context, userID types.UserID) ([]*model.SwapRequest, error) {
	return r.list(func(req *model.SwapRequest) bool {
		return req.RequesterID == userID
	})
}

func (r *swapRequestRepository) list(match func(*model.SwapRequest) bool) ([]*model.SwapRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	reqs := []*model.SwapRequest{}
	for _, req := range r.store.swaps {
		if match(req) {
			reqs = append(reqs, copySwapRequest(req))
		}
	}

	// newest first
	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
	return reqs, nil
}

func (r *swapRequestRepository) FindPendingBySlots(ctx context.Context, slotIDs []types.SlotID) ([]*model.SwapRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	reqs := []*model.SwapRequest{}
	for _, req := range r.store.swaps {
		if req.Status != types.SwapStatusPending {
			continue
		}
		for _, slotID := range slotIDs {
			if req.References(slotID) {
				reqs = append(reqs, copySwapRequest(req))
				break
			}
		}
	}

	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.Before(reqs[j].CreatedAt)
	})
	return reqs, nil
}
