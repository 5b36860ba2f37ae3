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

type swapRequestRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSwapRequestRepository(client *firestore.Client) *swapRequestRepository {
	return &swapRequestRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *swapRequestRepository) swapRequestsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_swap_requests"
	}
	return "swap_requests"
}

func (r *swapRequestRepository) Get(ctx context.Context, id types.SwapRequestID) (*model.SwapRequest, error) {
	docSnap, err := r.client.Collection(r.swapRequestsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "swap request not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get swap request", goerr.V("id", id))
	}

	var req model.SwapRequest
	if err := docSnap.DataTo(&req); err != nil {
		return nil, goerr.Wrap(err, "failed to decode swap request", goerr.V("id", id))
	}

	return &req, nil
}

func (r *swapRequestRepository) ListByResponder(ctx context.Context, userID types.UserID) ([]*model.SwapRequest, error) {
	query := r.client.Collection(r.swapRequestsCollection()).
		Where("ResponderID", "==", userID.String()).
		OrderBy("CreatedAt", firestore.Desc)
	return r.listQuery(ctx, query)
}

func (r *swapRequestRepository) ListByRequester(ctx context.Context, userID types.UserID) ([]*model.SwapRequest, error) {
	query := r.client.Collection(r.swapRequestsCollection()).
		Where("RequesterID", "==", userID.String()).
		OrderBy("CreatedAt", firestore.Desc)
	return r.listQuery(ctx, query)
}

func (r *swapRequestRepository) FindPendingBySlots(ctx context.Context, slotIDs []types.SlotID) ([]*model.SwapRequest, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(slotIDs))
	for i, id := range slotIDs {
		ids[i] = id.String()
	}

	col := r.client.Collection(r.swapRequestsCollection())
	queries := []firestore.Query{
		col.Where("Status", "==", types.SwapStatusPending.String()).Where("RequesterSlotID", "in", ids),
		col.Where("Status", "==", types.SwapStatusPending.String()).Where("ResponderSlotID", "in", ids),
	}

	seen := make(map[types.SwapRequestID]bool)
	found := []*model.SwapRequest{}
	for _, q := range queries {
		reqs, err := r.listQuery(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, req := range reqs {
			if !seen[req.ID] {
				seen[req.ID] = true
				found = append(found, req)
			}
		}
	}

	return found, nil
}

func (r *swapRequestRepository) listQuery(ctx context.Context, query firestore.Query) ([]*model.SwapRequest, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	reqs := []*model.SwapRequest{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate swap requests")
		}

		var req model.SwapRequest
		if err := docSnap.DataTo(&req); err != nil {
			return nil, goerr.Wrap(err, "failed to decode swap request", goerr.V("doc_id", docSnap.Ref.ID))
		}
		reqs = append(reqs, &req)
	}

	return reqs, nil
}
