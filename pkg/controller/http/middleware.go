package http

import (
	"net/http"

	"github.com/slotswapper/slotswapper/pkg/domain/model/auth"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

// userMiddleware resolves the caller's identity from the X-User-ID header.
// The server is expected to sit behind a gateway that authenticates the
// user and injects the header; requests without it are refused.
func userMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := types.UserID(r.Header.Get("X-User-ID"))
		if err := userID.Validate(); err != nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		ctx := auth.ContextWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
