package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// SwapRequest represents one proposed exchange of ownership between two
// slots. Requests are append-only: once ACCEPTED or REJECTED they are never
// mutated or deleted.
type SwapRequest struct {
	ID              types.SwapRequestID
	RequesterID     types.UserID
	RequesterSlotID types.SlotID
	ResponderID     types.UserID
	ResponderSlotID types.SlotID
	Status          types.SwapStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the structural invariants of a swap request
func (x *SwapRequest) Validate() error {
	if err := x.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid swap request ID")
	}
	if err := x.RequesterID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid requester", goerr.V("id", x.ID))
	}
	if err := x.ResponderID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid responder", goerr.V("id", x.ID))
	}
	if err := x.RequesterSlotID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid requester slot", goerr.V("id", x.ID))
	}
	if err := x.ResponderSlotID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid responder slot", goerr.V("id", x.ID))
	}
	if x.RequesterSlotID == x.ResponderSlotID {
		return goerr.New("swap request must reference two distinct slots",
			goerr.V("id", x.ID), goerr.V("slot", x.RequesterSlotID))
	}
	if x.RequesterID == x.ResponderID {
		return goerr.New("swap request must involve two distinct users",
			goerr.V("id", x.ID), goerr.V("user", x.RequesterID))
	}
	if !x.Status.IsValid() {
		return goerr.New("invalid swap status", goerr.V("id", x.ID), goerr.V("status", x.Status))
	}
	return nil
}

// References reports whether the request references the slot in either role
func (x *SwapRequest) References(id types.SlotID) bool {
	return x.RequesterSlotID == id || x.ResponderSlotID == id
}

// SlotIDs returns the pair of slot IDs referenced by the request
func (x *SwapRequest) SlotIDs() []types.SlotID {
	return []types.SlotID{x.RequesterSlotID, x.ResponderSlotID}
}
