package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"github.com/slotswapper/slotswapper/pkg/usecase"
)

type slotResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSlotResponse(slot *model.Slot) *slotResponse {
	if slot == nil {
		return nil
	}
	return &slotResponse{
		ID:        slot.ID.String(),
		Title:     slot.Title,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Status:    slot.Status.String(),
		OwnerID:   slot.OwnerID.String(),
		CreatedAt: slot.CreatedAt,
		UpdatedAt: slot.UpdatedAt,
	}
}

func toSlotResponses(slots []*model.Slot) []*slotResponse {
	resp := make([]*slotResponse, len(slots))
	for i, slot := range slots {
		resp[i] = toSlotResponse(slot)
	}
	return resp
}

func listSlotsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		slots, err := uc.Slot.ListSlots(r.Context(), userID)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, toSlotResponses(slots))
	}
}

type slotInput struct {
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

func createSlotHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		var input slotInput
		if err := decodeJSON(r, &input); err != nil {
			handleError(r.Context(), w, err)
			return
		}

		slot, err := uc.Slot.CreateSlot(r.Context(), userID, input.Title,
			input.StartTime, input.EndTime, types.SlotStatus(input.Status))
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusCreated, toSlotResponse(slot))
	}
}

func updateSlotHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		var input slotInput
		if err := decodeJSON(r, &input); err != nil {
			handleError(r.Context(), w, err)
			return
		}

		slot, err := uc.Slot.UpdateSlot(r.Context(), userID,
			types.SlotID(chi.URLParam(r, "slotID")),
			usecase.UpdateSlotInput{
				Title:     input.Title,
				StartTime: input.StartTime,
				EndTime:   input.EndTime,
				Status:    types.SlotStatus(input.Status),
			})
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, toSlotResponse(slot))
	}
}

func deleteSlotHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		if err := uc.Slot.DeleteSlot(r.Context(), userID, types.SlotID(chi.URLParam(r, "slotID"))); err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, map[string]string{"message": "slot deleted"})
	}
}
