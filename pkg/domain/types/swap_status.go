package types

import "fmt"

// SwapStatus represents the status of a swap request
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"
	SwapStatusAccepted SwapStatus = "ACCEPTED"
	SwapStatusRejected SwapStatus = "REJECTED"
)

// AllSwapStatuses returns all valid swap statuses
func AllSwapStatuses() []SwapStatus {
	return []SwapStatus{
		SwapStatusPending,
		SwapStatusAccepted,
		SwapStatusRejected,
	}
}

// IsValid checks if the swap status is valid
func (s SwapStatus) IsValid() bool {
	switch s {
	case SwapStatusPending,
		SwapStatusAccepted,
		SwapStatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions may leave this status
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusAccepted || s == SwapStatusRejected
}

// String returns the string representation of the swap status
func (s SwapStatus) String() string {
	return string(s)
}

// ParseSwapStatus parses a string into a SwapStatus
func ParseSwapStatus(s string) (SwapStatus, error) {
	status := SwapStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid swap status: %s", s)
	}
	return status, nil
}
