package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type slotRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSlotRepository(client *firestore.Client) *slotRepository {
	return &slotRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *slotRepository) slotsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_slots"
	}
	return "slots"
}

func (r *slotRepository) Create(ctx context.Context, slot *model.Slot) (*model.Slot, error) {
	now := time.Now().UTC()
	created := *slot
	if created.ID == "" {
		created.ID = types.NewSlotID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.slotsCollection()).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create slot", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *slotRepository) Get(ctx context.Context, id types.SlotID) (*model.Slot, error) {
	docSnap, err := r.client.Collection(r.slotsCollection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "slot not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get slot", goerr.V("id", id))
	}

	var slot model.Slot
	if err := docSnap.DataTo(&slot); err != nil {
		return nil, goerr.Wrap(err, "failed to decode slot", goerr.V("id", id))
	}

	return &slot, nil
}

func (r *slotRepository) ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Slot, error) {
	query := r.client.Collection(r.slotsCollection()).
		Where("OwnerID", "==", ownerID.String()).
		OrderBy("StartTime", firestore.Asc)

	return r.listQuery(ctx, query, nil)
}

func (r *slotRepository) ListSwappable(ctx context.Context, excludeOwner types.UserID) ([]*model.Slot, error) {
	query := r.client.Collection(r.slotsCollection()).
		Where("Status", "==", types.SlotStatusSwappable.String()).
		OrderBy("StartTime", firestore.Asc)

	// Owner exclusion is filtered client side: a != query would force an
	// extra ordering constraint on OwnerID.
	return r.listQuery(ctx, query, func(slot *model.Slot) bool {
		return slot.OwnerID != excludeOwner
	})
}

func (r *slotRepository) listQuery(ctx context.Context, query firestore.Query, keep func(*model.Slot) bool) ([]*model.Slot, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	slots := []*model.Slot{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate slots")
		}

		var slot model.Slot
		if err := docSnap.DataTo(&slot); err != nil {
			return nil, goerr.Wrap(err, "failed to decode slot", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if keep == nil || keep(&slot) {
			slots = append(slots, &slot)
		}
	}

	return slots, nil
}

func (r *slotRepository) Update(ctx context.Context, slot *model.Slot) (*model.Slot, error) {
	existing, err := r.Get(ctx, slot.ID)
	if err != nil {
		return nil, err
	}

	updated := *slot
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.slotsCollection()).Doc(updated.ID.String())
	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update slot", goerr.V("id", updated.ID))
	}

	return &updated, nil
}

func (r *slotRepository) Delete(ctx context.Context, id types.SlotID) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	if _, err := r.client.Collection(r.slotsCollection()).Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete slot", goerr.V("id", id))
	}
	return nil
}
