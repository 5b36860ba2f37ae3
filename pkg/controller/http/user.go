package http

import (
	"net/http"
	"time"

	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/usecase"
)

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(user *model.User) *userResponse {
	if user == nil {
		return nil
	}
	return &userResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func getProfileHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		user, err := uc.User.GetProfile(r.Context(), userID)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, toUserResponse(user))
	}
}

func putProfileHandler(uc *usecase.UseCases) http.HandlerFunc {
	type input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
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

		user, err := uc.User.PutProfile(r.Context(), userID, in.Name, in.Email)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}
		respondJSON(r.Context(), w, http.StatusOK, toUserResponse(user))
	}
}
