package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"github.com/slotswapper/slotswapper/pkg/repository/firestore"
	"github.com/slotswapper/slotswapper/pkg/repository/memory"
)

// newFirestoreRepo builds a Firestore-backed repository with a unique
// collection prefix so parallel test runs do not see each other's data.
func newFirestoreRepo(t *testing.T, projectID string) interfaces.Repository {
	t.Helper()
	repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"),
		firestore.WithCollectionPrefix(fmt.Sprintf("test-%s-", uuid.NewString()[:8])))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func newSlot(owner types.UserID, title string, start time.Time, status types.SlotStatus) *model.Slot {
	return &model.Slot{
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
		OwnerID:   owner,
	}
}

func runSlotRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Slot().Create(ctx, newSlot("alice", "morning shift", base, types.SlotStatusBusy))
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID.String()).NotEqual("")
		gt.Value(t, created.Title).Equal("morning shift")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()
	})

	t.Run("Get retrieves a stored slot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Slot().Create(ctx, newSlot("alice", "shift", base, types.SlotStatusSwappable))
		gt.NoError(t, err).Required()

		retrieved, err := repo.Slot().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.ID).Equal(created.ID)
		gt.Value(t, retrieved.Status).Equal(types.SlotStatusSwappable)
		gt.Value(t, retrieved.OwnerID).Equal(types.UserID("alice"))
		gt.Bool(t, retrieved.StartTime.Equal(created.StartTime)).True()
	})

	t.Run("Get unknown slot returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Slot().Get(ctx, types.NewSlotID())
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListByOwner returns only the owner's slots, earliest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		late, err := repo.Slot().Create(ctx, newSlot("alice", "late", base.Add(4*time.Hour), types.SlotStatusBusy))
		gt.NoError(t, err).Required()
		early, err := repo.Slot().Create(ctx, newSlot("alice", "early", base, types.SlotStatusBusy))
		gt.NoError(t, err).Required()
		_, err = repo.Slot().Create(ctx, newSlot("bob", "other", base, types.SlotStatusBusy))
		gt.NoError(t, err).Required()

		slots, err := repo.Slot().ListByOwner(ctx, "alice")
		gt.NoError(t, err).Required()
		gt.Array(t, slots).Length(2)
		gt.Value(t, slots[0].ID).Equal(early.ID)
		gt.Value(t, slots[1].ID).Equal(late.ID)
	})

	t.Run("ListSwappable excludes the caller's own slots", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Slot().Create(ctx, newSlot("alice", "mine", base, types.SlotStatusSwappable))
		gt.NoError(t, err).Required()
		theirs, err := repo.Slot().Create(ctx, newSlot("bob", "theirs", base, types.SlotStatusSwappable))
		gt.NoError(t, err).Required()
		_, err = repo.Slot().Create(ctx, newSlot("bob", "busy", base, types.SlotStatusBusy))
		gt.NoError(t, err).Required()
		_, err = repo.Slot().Create(ctx, newSlot("carol", "pending", base, types.SlotStatusSwapPending))
		gt.NoError(t, err).Required()

		slots, err := repo.Slot().ListSwappable(ctx, "alice")
		gt.NoError(t, err).Required()
		gt.Array(t, slots).Length(1)
		gt.Value(t, slots[0].ID).Equal(theirs.ID)
	})

	t.Run("Update replaces fields and preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Slot().Create(ctx, newSlot("alice", "original", base, types.SlotStatusBusy))
		gt.NoError(t, err).Required()

		created.Title = "renamed"
		created.Status = types.SlotStatusSwappable
		updated, err := repo.Slot().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Title).Equal("renamed")
		gt.Value(t, updated.Status).Equal(types.SlotStatusSwappable)
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()

		retrieved, err := repo.Slot().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Title).Equal("renamed")
	})

	t.Run("Delete removes the slot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Slot().Create(ctx, newSlot("alice", "doomed", base, types.SlotStatusBusy))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Slot().Delete(ctx, created.ID)).Required()

		_, err = repo.Slot().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Delete unknown slot returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Slot().Delete(ctx, types.NewSlotID())
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestSlotRepository_Memory(t *testing.T) {
	runSlotRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestSlotRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runSlotRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return newFirestoreRepo(t, projectID)
	})
}
