package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID identifies an account. It is issued by the upstream authenticator
// and treated as opaque here.
type UserID string

func (x UserID) String() string {
	return string(x)
}

// Validate checks if the user ID is valid
func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID is empty")
	}
	return nil
}

// SlotID identifies a time slot
type SlotID string

// NewSlotID generates a new random slot ID
func NewSlotID() SlotID {
	return SlotID(uuid.New().String())
}

func (x SlotID) String() string {
	return string(x)
}

// Validate checks if the slot ID is valid
func (x SlotID) Validate() error {
	if x == "" {
		return goerr.New("slot ID is empty")
	}
	return nil
}

// SwapRequestID identifies a swap request
type SwapRequestID string

// NewSwapRequestID generates a new random swap request ID
func NewSwapRequestID() SwapRequestID {
	return SwapRequestID(uuid.New().String())
}

func (x SwapRequestID) String() string {
	return string(x)
}

// Validate checks if the swap request ID is valid
func (x SwapRequestID) Validate() error {
	if x == "" {
		return goerr.New("swap request ID is empty")
	}
	return nil
}
