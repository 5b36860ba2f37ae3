package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"github.com/slotswapper/slotswapper/pkg/usecase"
)

type swapRequestResponse struct {
	ID              string    `json:"id"`
	RequesterID     string    `json:"requesterId"`
	RequesterSlotID string    `json:"requesterSlotId"`
	ResponderID     string    `json:"responderId"`
	ResponderSlotID string    `json:"responderSlotId"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toSwapRequestResponse(req *model.SwapRequest) *swapRequestResponse {
	return &swapRequestResponse{
		ID:              req.ID.String(),
		RequesterID:     req.RequesterID.String(),
		RequesterSlotID: req.RequesterSlotID.String(),
		ResponderID:     req.ResponderID.String(),
		ResponderSlotID: req.ResponderSlotID.String(),
		Status:          req.Status.String(),
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}
}

type swapRequestDetailResponse struct {
	*swapRequestResponse
	RequesterSlot *slotResponse `json:"requesterSlot"`
	ResponderSlot *slotResponse `json:"responderSlot"`
	Requester     *userResponse `json:"requester"`
	Responder     *userResponse `json:"responder"`
}

func toSwapRequestDetailResponses(details []*usecase.SwapRequestDetail) []*swapRequestDetailResponse {
	resp := make([]*swapRequestDetailResponse, len(details))
	for i, d := range details {
		resp[i] = &swapRequestDetailResponse{
			swapRequestResponse: toSwapRequestResponse(d.Request),
			RequesterSlot:       toSlotResponse(d.RequesterSlot),
			ResponderSlot:       toSlotResponse(d.ResponderSlot),
			Requester:           toUserResponse(d.Requester),
			Responder:           toUserResponse(d.Responder),
		}
	}
	return resp
}

type swappableSlotResponse struct {
	*slotResponse
	Owner *userResponse `json:"owner"`
}

func swappableSlotsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		results, err := uc.Swap.ListSwappableSlots(r.Context(), userID)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		resp := make([]*swappableSlotResponse, len(results))
		for i, result := range results {
			resp[i] = &swappableSlotResponse{
				slotResponse: toSlotResponse(result.Slot),
				Owner:        toUserResponse(result.Owner),
			}
		}
		respondJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createSwapRequestHandler(uc *usecase.UseCases) http.HandlerFunc {
	type input struct {
		MySlotID     string `json:"mySlotId"`
		TargetSlotID string `json:"targetSlotId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		var in input
		if err := decodeJSON(r, &in); err != nil {
			handleError(r.Context(), w, err)
			return
		}

		req, err := uc.Swap.CreateSwapRequest(r.Context(), userID,
			types.SlotID(in.MySlotID), types.SlotID(in.TargetSlotID))
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusCreated, toSwapRequestResponse(req))
	}
}

func respondSwapRequestHandler(uc *usecase.UseCases) http.HandlerFunc {
	type input struct {
		Accept bool `json:"accept"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		var in input
		if err := decodeJSON(r, &in); err != nil {
			handleError(r.Context(), w, err)
			return
		}

		req, err := uc.Swap.RespondToSwapRequest(r.Context(), userID,
			types.SwapRequestID(chi.URLParam(r, "requestID")), in.Accept)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, toSwapRequestResponse(req))
	}
}

func incomingRequestsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		details, err := uc.Swap.ListIncomingRequests(r.Context(), userID)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, toSwapRequestDetailResponses(details))
	}
}

func outgoingRequestsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		details, err := uc.Swap.ListOutgoingRequests(r.Context(), userID)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, toSwapRequestDetailResponses(details))
	}
}
