package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

type slotRepository struct {
	store *Memory
}

func copySlot(s *model.Slot) *model.Slot {
	copied := *s
	return &copied
}

func (r *slotRepository) Create(ctx context.Context, slot *model.Slot) (*model.Slot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	created := copySlot(slot)
	if created.ID == "" {
		created.ID = types.NewSlotID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.store.slots[created.ID] = created
	return copySlot(created), nil
}

func (r *slotRepository) Get(ctx context.Context, id types.SlotID) (*model.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slot, ok := r.store.slots[id]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "slot not found", goerr.V("id", id))
	}
	return copySlot(slot), nil
}

func (r *slotRepository) ListByOwner(ctx context.Context, ownerID types.UserID) ([]*model.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slots := []*model.Slot{}
	for _, slot := range r.store.slots {
		if slot.OwnerID == ownerID {
			slots = append(slots, copySlot(slot))
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots, nil
}

func (r *slotRepository) ListSwappable(ctx context.Context, excludeOwner types.UserID) ([]*model.Slot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	slots := []*model.Slot{}
	for _, slot := range r.store.slots {
		if slot.Status == types.SlotStatusSwappable && slot.OwnerID != excludeOwner {
			slots = append(slots, copySlot(slot))
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots, nil
}

func (r *slotRepository) Update(ctx context.Context, slot *model.Slot) (*model.Slot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.slots[slot.ID]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "slot not found", goerr.V("id", slot.ID))
	}

	updated := copySlot(slot)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.store.slots[updated.ID] = updated
	return copySlot(updated), nil
}

func (r *slotRepository) Delete(ctx context.Context, id types.SlotID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.slots[id]; !ok {
		return goerr.Wrap(interfaces.ErrNotFound, "slot not found", goerr.V("id", id))
	}
	delete(r.store.slots, id)
	return nil
}
