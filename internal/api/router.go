package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/deckforge/internal/api/middleware"
)

// RouterConfig holds what the router serves. Metrics may be nil.
type RouterConfig struct {
	Decks   *DeckHandler
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewTraceMiddleware(cfg.Logger))

	r.Route("/api/decks", func(r chi.Router) {
		r.Post("/topic", cfg.Decks.CreateTopicDeck)
		r.Post("/content", cfg.Decks.CreateContentDeck)
		r.Get("/{id}", cfg.Decks.GetDeck)
		r.Get("/{id}/file", cfg.Decks.DownloadDeck)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil && cfg.Logger != nil {
			cfg.Logger.Error("failed to write health check response", "error", err)
		}
	})

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	return r
}
