package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/slotswapper/slotswapper/pkg/usecase"
	"github.com/slotswapper/slotswapper/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(userMiddleware)

		r.Route("/slots", func(r chi.Router) {
			r.Get("/", listSlotsHandler(uc))
			r.Post("/", createSlotHandler(uc))
			r.Put("/{slotID}", updateSlotHandler(uc))
			r.Delete("/{slotID}", deleteSlotHandler(uc))
		})

		r.Route("/swaps", func(r chi.Router) {
			r.Get("/swappable-slots", swappableSlotsHandler(uc))
			r.Post("/request", createSwapRequestHandler(uc))
			r.Post("/response/{requestID}", respondSwapRequestHandler(uc))
			r.Get("/incoming", incomingRequestsHandler(uc))
			r.Get("/outgoing", outgoingRequestsHandler(uc))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", getProfileHandler(uc))
			r.Put("/me", putProfileHandler(uc))
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
