package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Firestore struct {
	client   *firestore.Client
	slotRepo *slotRepository
	swapRepo *swapRequestRepository
	userRepo *userRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.slotRepo.collectionPrefix = prefix
		f.swapRepo.collectionPrefix = prefix
		f.userRepo.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:   client,
		slotRepo: newSlotRepository(client),
		swapRepo: newSwapRequestRepository(client),
		userRepo: newUserRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Slot() interfaces.SlotRepository {
	return f.slotRepo
}

func (f *Firestore) SwapRequest() interfaces.SwapRequestRepository {
	return f.swapRepo
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.userRepo
}

// RunTransaction maps the unit of work onto a native Firestore transaction.
// Firestore requires all reads to precede the first write within a
// transaction; the Tx handle inherits that constraint.
func (f *Firestore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.Tx) error) error {
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		handle := &fsTx{
			tx:       tx,
			client:   f.client,
			slotRepo: f.slotRepo,
			swapRepo: f.swapRepo,
		}
		return fn(ctx, handle)
	})
	if err != nil {
		if status.Code(err) == codes.Aborted {
			return goerr.Wrap(interfaces.ErrTxConflict, "firestore transaction aborted", goerr.V("cause", err))
		}
		return err
	}
	return nil
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
