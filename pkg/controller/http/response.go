package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slotswapper/slotswapper/pkg/domain/model/auth"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
	"github.com/slotswapper/slotswapper/pkg/usecase"
	"github.com/slotswapper/slotswapper/pkg/utils/errutil"
	"github.com/slotswapper/slotswapper/pkg/utils/safe"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// handleError maps use case errors to HTTP status codes and writes the
// JSON error body.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSlotNotFound),
		errors.Is(err, usecase.ErrSwapRequestNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, usecase.ErrNotAuthorized):
		return http.StatusForbidden

	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrNotSlotOwner),
		errors.Is(err, usecase.ErrSelfSwap),
		errors.Is(err, usecase.ErrStatusNotAllowed):
		return http.StatusBadRequest

	case errors.Is(err, usecase.ErrSlotNotSwappable),
		errors.Is(err, usecase.ErrConflictingSwap),
		errors.Is(err, usecase.ErrAlreadyResolved),
		errors.Is(err, usecase.ErrSlotLocked),
		errors.Is(err, usecase.ErrTransactionConflict):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// callerID extracts the authenticated user injected by userMiddleware.
func callerID(r *http.Request) (types.UserID, error) {
	return auth.UserIDFromContext(r.Context())
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrInvalidInput, "malformed JSON body", goerr.V("cause", err))
	}
	return nil
}
