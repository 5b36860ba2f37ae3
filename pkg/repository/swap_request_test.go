package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"github.com/slotswapper/slotswapper/pkg/repository/memory"
)

func putSwapRequest(t *testing.T, repo interfaces.Repository, req *model.SwapRequest) *model.SwapRequest {
	t.Helper()
	if req.ID == "" {
		req.ID = types.NewSwapRequestID()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	req.UpdatedAt = req.CreatedAt

	err := repo.RunTransaction(context.Background(), func(ctx context.Context, tx interfaces.Tx) error {
		return tx.PutSwapRequest(ctx, req)
	})
	gt.NoError(t, err).Required()
	return req
}

func runSwapRequestRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get retrieves a stored request", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		req := putSwapRequest(t, repo, &model.SwapRequest{
			RequesterID:     "alice",
			RequesterSlotID: types.NewSlotID(),
			ResponderID:     "bob",
			ResponderSlotID: types.NewSlotID(),
			Status:          types.SwapStatusPending,
		})

		retrieved, err := repo.SwapRequest().Get(ctx, req.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.RequesterID).Equal(types.UserID("alice"))
		gt.Value(t, retrieved.ResponderID).Equal(types.UserID("bob"))
		gt.Value(t, retrieved.Status).Equal(types.SwapStatusPending)
	})

	t.Run("Get unknown request returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.SwapRequest().Get(ctx, types.NewSwapRequestID())
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListByResponder returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		older := putSwapRequest(t, repo, &model.SwapRequest{
			RequesterID: "alice", RequesterSlotID: types.NewSlotID(),
			ResponderID: "bob", ResponderSlotID: types.NewSlotID(),
			Status: types.SwapStatusPending, CreatedAt: now.Add(-time.Minute),
		})
		newer := putSwapRequest(t, repo, &model.SwapRequest{
			RequesterID: "carol", RequesterSlotID: types.NewSlotID(),
			ResponderID: "bob", ResponderSlotID: types.NewSlotID(),
			Status: types.SwapStatusRejected, CreatedAt: now,
		})
		putSwapRequest(t, repo, &model.SwapRequest{
			RequesterID: "alice", RequesterSlotID: types.NewSlotID(),
			ResponderID: "dave", ResponderSlotID: types.NewSlotID(),
			Status: types.SwapStatusPending, CreatedAt: now,
		})

		reqs, err := repo.SwapRequest().ListByResponder(ctx, "bob")
		gt.NoError(t, err).Required()
		gt.Array(t, reqs).Length(2)
		gt.Value(t, reqs[0].ID).Equal(newer.ID)
		gt.Value(t, reqs[1].ID).Equal(older.ID)
	})

	t.Run("ListByRequester returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		older := putSwapRequest(t, repo, &model.SwapRequest{
			RequesterID: "alice", RequesterSlotID: types.NewSlotID(),
			ResponderID: "bob", ResponderSlotID: types.NewSlotID(),
			Status: types.SwapStatusAccepted, CreatedAt: now.Add(-time.Minute),
		})
		newer := putSwapRequest(t, repo, &model.SwapRequest{
			RequesterID: "alice", RequesterSlotID: types.NewSlotID(),
			ResponderID: "carol", ResponderSlotID: types.NewSlotID(),
			Status: types.SwapStatusPending, CreatedAt: now,
		})

		reqs, err := repo.SwapRequest().ListByRequester(ctx, "alice")
		gt.NoError(t, err).Required()
		gt.Array(t, reqs).Length(2)
		gt.Value(t, reqs[0].ID).Equal(newer.ID)
		gt.Value(t, reqs[1].ID).Equal(older.ID)
	})

	t.Run("FindPendingBySlots matches either side and skips resolved", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s1, s2, s3 := types.NewSlotID(), types.NewSlotID(), types.NewSlotID()

		asRequester := putSwapRequest(t, repo, &model.SwapRequest{
			RequesterID: "alice", RequesterSlotID: s1,
			ResponderID: "bob", ResponderSlotID: types.NewSlotID(),
			Status: types.SwapStatusPending,
		})
		asResponder := putSwapRequest(t, repo, &model.SwapRequest{
			RequesterID: "carol", RequesterSlotID: types.NewSlotID(),
			ResponderID: "bob", ResponderSlotID: s2,
			Status: types.SwapStatusPending,
		})
		putSwapRequest(t, repo, &model.SwapRequest{
			RequesterID: "alice", RequesterSlotID: s3,
			ResponderID: "bob", ResponderSlotID: types.NewSlotID(),
			Status: types.SwapStatusRejected,
		})

		found, err := repo.SwapRequest().FindPendingBySlots(ctx, []types.SlotID{s1, s2, s3})
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(2)

		ids := map[types.SwapRequestID]bool{}
		for _, req := range found {
			ids[req.ID] = true
		}
		gt.Bool(t, ids[asRequester.ID]).True()
		gt.Bool(t, ids[asResponder.ID]).True()
	})

	t.Run("FindPendingBySlots with no match returns empty", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		found, err := repo.SwapRequest().FindPendingBySlots(ctx, []types.SlotID{types.NewSlotID()})
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(0)
	})
}

func TestSwapRequestRepository_Memory(t *testing.T) {
	runSwapRequestRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestSwapRequestRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runSwapRequestRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return newFirestoreRepo(t, projectID)
	})
}
