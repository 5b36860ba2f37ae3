package types

import "fmt"

// SlotStatus represents the status of a slot
type SlotStatus string

const (
	SlotStatusBusy        SlotStatus = "BUSY"
	SlotStatusSwappable   SlotStatus = "SWAPPABLE"
	SlotStatusSwapPending SlotStatus = "SWAP_PENDING"
)

// AllSlotStatuses returns all valid slot statuses
func AllSlotStatuses() []SlotStatus {
	return []SlotStatus{
		SlotStatusBusy,
		SlotStatusSwappable,
		SlotStatusSwapPending,
	}
}

// IsValid checks if the slot status is valid
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusBusy,
		SlotStatusSwappable,
		SlotStatusSwapPending:
		return true
	default:
		return false
	}
}

// OwnerSettable reports whether a slot owner may set this status directly.
// SWAP_PENDING is owned exclusively by the negotiation engine.
func (s SlotStatus) OwnerSettable() bool {
	switch s {
	case SlotStatusBusy, SlotStatusSwappable:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as SlotStatusBusy.
func (s SlotStatus) Normalize() SlotStatus {
	if s == "" {
		return SlotStatusBusy
	}
	return s
}

// String returns the string representation of the slot status
func (s SlotStatus) String() string {
	return string(s)
}

// ParseSlotStatus parses a string into a SlotStatus
func ParseSlotStatus(s string) (SlotStatus, error) {
	status := SlotStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid slot status: %s", s)
	}
	return status, nil
}
