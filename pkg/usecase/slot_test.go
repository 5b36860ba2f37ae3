package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"github.com/slotswapper/slotswapper/pkg/repository/memory"
	"github.com/slotswapper/slotswapper/pkg/usecase"
)

func TestSlotLifecycle(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	t.Run("create defaults to BUSY", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		slot, err := uc.Slot.CreateSlot(ctx, "alice", "morning shift", start, start.Add(time.Hour), "")
		gt.NoError(t, err).Required()
		gt.V(t, slot.Status).Equal(types.SlotStatusBusy)
		gt.V(t, slot.OwnerID).Equal(types.UserID("alice"))
		gt.Bool(t, slot.CreatedAt.IsZero()).False()
	})

	t.Run("create refuses SWAP_PENDING", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.Slot.CreateSlot(ctx, "alice", "shift", start, start.Add(time.Hour), types.SlotStatusSwapPending)
		gt.Bool(t, errors.Is(err, usecase.ErrStatusNotAllowed)).True()
	})

	t.Run("create refuses end before start", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.Slot.CreateSlot(ctx, "alice", "shift", start, start.Add(-time.Hour), types.SlotStatusBusy)
		gt.Error(t, err)
	})

	t.Run("list returns own slots earliest first", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		late := gt.R1(uc.Slot.CreateSlot(ctx, "alice", "late", start.Add(4*time.Hour), start.Add(5*time.Hour), types.SlotStatusBusy)).NoError(t)
		early := gt.R1(uc.Slot.CreateSlot(ctx, "alice", "early", start, start.Add(time.Hour), types.SlotStatusBusy)).NoError(t)
		gt.R1(uc.Slot.CreateSlot(ctx, "bob", "other", start, start.Add(time.Hour), types.SlotStatusBusy)).NoError(t)

		slots := gt.R1(uc.Slot.ListSlots(ctx, "alice")).NoError(t)
		gt.A(t, slots).Length(2)
		gt.V(t, slots[0].ID).Equal(early.ID)
		gt.V(t, slots[1].ID).Equal(late.ID)
	})

	t.Run("update edits fields and keeps the rest", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		slot := gt.R1(uc.Slot.CreateSlot(ctx, "alice", "shift", start, start.Add(time.Hour), types.SlotStatusBusy)).NoError(t)

		updated, err := uc.Slot.UpdateSlot(ctx, "alice", slot.ID, usecase.UpdateSlotInput{
			Status: types.SlotStatusSwappable,
		})
		gt.NoError(t, err).Required()
		gt.V(t, updated.Status).Equal(types.SlotStatusSwappable)
		gt.V(t, updated.Title).Equal("shift")
		gt.V(t, updated.StartTime).Equal(start)
	})

	t.Run("update by a non-owner is refused", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		slot := gt.R1(uc.Slot.CreateSlot(ctx, "alice", "shift", start, start.Add(time.Hour), types.SlotStatusBusy)).NoError(t)

		_, err := uc.Slot.UpdateSlot(ctx, "bob", slot.ID, usecase.UpdateSlotInput{Title: "stolen"})
		gt.Bool(t, errors.Is(err, usecase.ErrNotAuthorized)).True()
	})

	t.Run("update and delete refused while locked by a negotiation", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		s1 := gt.R1(uc.Slot.CreateSlot(ctx, "alice", "mine", start, start.Add(time.Hour), types.SlotStatusSwappable)).NoError(t)
		s2 := gt.R1(uc.Slot.CreateSlot(ctx, "bob", "theirs", start, start.Add(time.Hour), types.SlotStatusSwappable)).NoError(t)
		gt.R1(uc.Swap.CreateSwapRequest(ctx, "alice", s1.ID, s2.ID)).NoError(t)

		_, err := uc.Slot.UpdateSlot(ctx, "alice", s1.ID, usecase.UpdateSlotInput{Title: "edited"})
		gt.Bool(t, errors.Is(err, usecase.ErrSlotLocked)).True()

		err = uc.Slot.DeleteSlot(ctx, "bob", s2.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrSlotLocked)).True()
	})

	t.Run("delete removes the slot", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		slot := gt.R1(uc.Slot.CreateSlot(ctx, "alice", "shift", start, start.Add(time.Hour), types.SlotStatusBusy)).NoError(t)
		gt.NoError(t, uc.Slot.DeleteSlot(ctx, "alice", slot.ID))

		_, err := uc.Slot.ListSlots(ctx, "alice")
		gt.NoError(t, err)
		slots := gt.R1(uc.Slot.ListSlots(ctx, "alice")).NoError(t)
		gt.A(t, slots).Length(0)
	})

	t.Run("delete unknown slot", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		err := uc.Slot.DeleteSlot(ctx, "alice", "no-such-slot")
		gt.Bool(t, errors.Is(err, usecase.ErrSlotNotFound)).True()
	})

	t.Run("delete refused when a pending request references the slot", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		mine := seedSlot(t, repo, "alice", types.SlotStatusSwappable)
		theirs := seedSlot(t, repo, "bob", types.SlotStatusSwappable)

		// Install the PENDING request without the status write, as if a
		// negotiation committed after the caller's last read of the slot.
		now := time.Now().UTC()
		err := repo.RunTransaction(ctx, func(ctx context.Context, tx interfaces.Tx) error {
			return tx.PutSwapRequest(ctx, &model.SwapRequest{
				ID:              types.NewSwapRequestID(),
				RequesterID:     "bob",
				RequesterSlotID: theirs.ID,
				ResponderID:     "alice",
				ResponderSlotID: mine.ID,
				Status:          types.SwapStatusPending,
				CreatedAt:       now,
				UpdatedAt:       now,
			})
		})
		gt.NoError(t, err).Required()

		err = uc.Slot.DeleteSlot(ctx, "alice", mine.ID)
		gt.Bool(t, errors.Is(err, usecase.ErrSlotLocked)).True()

		slot := gt.R1(repo.Slot().Get(ctx, mine.ID)).NoError(t)
		gt.V(t, slot.ID).Equal(mine.ID)
	})

	t.Run("delete racing a new negotiation never strands a request", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		mine := seedSlot(t, repo, "alice", types.SlotStatusSwappable)
		theirs := seedSlot(t, repo, "bob", types.SlotStatusSwappable)

		var wg sync.WaitGroup
		var deleteErr, createErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			deleteErr = uc.Slot.DeleteSlot(ctx, "bob", theirs.ID)
		}()
		go func() {
			defer wg.Done()
			_, createErr = uc.Swap.CreateSwapRequest(ctx, "alice", mine.ID, theirs.ID)
		}()
		wg.Wait()

		// Exactly one side commits; the loser observes the winner's state.
		gt.Bool(t, (deleteErr == nil) != (createErr == nil)).True()

		refs := gt.R1(repo.SwapRequest().FindPendingBySlots(ctx, []types.SlotID{theirs.ID})).NoError(t)
		if deleteErr == nil {
			gt.Bool(t, errors.Is(createErr, usecase.ErrSlotNotFound)).True()
			gt.A(t, refs).Length(0)
			_, err := repo.Slot().Get(ctx, theirs.ID)
			gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
		} else {
			gt.Bool(t, errors.Is(deleteErr, usecase.ErrSlotLocked)).True()
			gt.A(t, refs).Length(1)
		}
		checkPendingInvariant(t, repo, mine.ID, theirs.ID)
	})
}

func TestUserProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("put then get", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		stored := gt.R1(uc.User.PutProfile(ctx, "alice", "Alice", "alice@example.com")).NoError(t)
		gt.V(t, stored.Name).Equal("Alice")

		got := gt.R1(uc.User.GetProfile(ctx, "alice")).NoError(t)
		gt.V(t, got.Email).Equal("alice@example.com")
	})

	t.Run("put replaces the profile", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		gt.R1(uc.User.PutProfile(ctx, "alice", "Alice", "alice@example.com")).NoError(t)
		gt.R1(uc.User.PutProfile(ctx, "alice", "Alice B.", "alice@example.com")).NoError(t)

		got := gt.R1(uc.User.GetProfile(ctx, "alice")).NoError(t)
		gt.V(t, got.Name).Equal("Alice B.")
	})

	t.Run("get unknown user", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_, err := uc.User.GetProfile(ctx, "nobody")
		gt.Bool(t, errors.Is(err, usecase.ErrUserNotFound)).True()
	})
}
