package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// Slot represents a user-owned time interval that may be offered for exchange.
// Status and OwnerID are written only by the negotiation engine once a slot
// enters a negotiation; the owner controls the remaining fields.
type Slot struct {
	ID        types.SlotID
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Status    types.SlotStatus
	OwnerID   types.UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the structural invariants of a slot
func (x *Slot) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid slot ID")
	}
	if x.Title == "" {
		return goerr.New("slot title is required", goerr.V("id", x.ID))
	}
	if x.StartTime.IsZero() || x.EndTime.IsZero() {
		return goerr.New("slot start and end times are required", goerr.V("id", x.ID))
	}
	if !x.EndTime.After(x.StartTime) {
		return goerr.New("slot end time must be after start time",
			goerr.V("id", x.ID),
			goerr.V("start", x.StartTime),
			goerr.V("end", x.EndTime))
	}
	if err := x.OwnerID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid slot owner", goerr.V("id", x.ID))
	}
	if !x.Status.IsValid() {
		return goerr.New("invalid slot status", goerr.V("id", x.ID), goerr.V("status", x.Status))
	}
	return nil
}
