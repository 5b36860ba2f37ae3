package memory

import (
	"context"
	"sync"

	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// Memory is an in-memory implementation of interfaces.Repository for
// development and testing. A single store-wide mutex is the transaction
// boundary: units of work run serially, so they never conflict.
type Memory struct {
	mu    sync.RWMutex
	slots map[types.SlotID]*model.Slot
	swaps map[types.SwapRequestID]*model.SwapRequest
	users map[types.UserID]*model.User

	slotRepo *slotRepository
	swapRepo *swapRequestRepository
	userRepo *userRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	m := &Memory{
		slots: make(map[types.SlotID]*model.Slot),
		swaps: make(map[types.SwapRequestID]*model.SwapRequest),
		users: make(map[types.UserID]*model.User),
	}
	m.slotRepo = &slotRepository{store: m}
	m.swapRepo = &swapRequestRepository{store: m}
	m.userRepo = &userRepository{store: m}
	return m
}

func (m *Memory) Slot() interfaces.SlotRepository {
	return m.slotRepo
}

func (m *Memory) SwapRequest() interfaces.SwapRequestRepository {
	return m.swapRepo
}

func (m *Memory) User() interfaces.UserRepository {
	return m.userRepo
}

// RunTransaction holds the store lock for the whole unit of work. Writes are
// buffered in the Tx handle and applied only when fn returns nil, so a
// failed unit leaves the store untouched.
func (m *Memory) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{
		store:       m,
		slotWrites:  make(map[types.SlotID]*model.Slot),
		slotDeletes: make(map[types.SlotID]bool),
		swapWrites:  make(map[types.SwapRequestID]*model.SwapRequest),
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	for id, slot := range tx.slotWrites {
		m.slots[id] = slot
	}
	for id := range tx.slotDeletes {
		delete(m.slots, id)
	}
	for id, swap := range tx.swapWrites {
		m.swaps[id] = swap
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}
