package rest

import (
	"chat-mirror/auth"
	"chat-mirror/observability"
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type TokenValidator interface {
	Validate(token string) (*auth.CustomClaims, error)
}

type DeviceRegistry interface {
	RegisterDevice(ctx context.Context, userID uint, token string) error
}

type StatsProvider interface {
	GetLatest() observability.Snapshot
}

// NewRouter wires the HTTP routes. Everything under /api needs a bearer token.
func NewRouter(h *Handler, tokens TokenValidator, stats StatsProvider, allowedOrigins []string, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	r.Route("/api", func(api chi.Router) {
		api.Use(Authenticate(tokens))
		h.RegisterRoutes(api)
	})

	r.Get("/debug/stats", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, stats.GetLatest())
	})

	return r
}
