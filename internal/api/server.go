// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ryogami/kiryuu-go/internal/core"
	"github.com/ryogami/kiryuu-go/internal/store"
	"github.com/ryogami/kiryuu-go/internal/websocket"
)

// Server holds the dependencies for our API.
type Server struct {
	app   *core.App
	db    *sql.DB
	store *store.Store
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	return &Server{
		app:   app,
		db:    app.DB,
		store: store.New(app.DB),
	}
}

// Store returns the store instance.
func (s *Server) Store() *store.Store {
	return s.store
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/version", s.handleGetVersion)
	r.Get("/api/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// Provider Routes
		r.Get("/providers", s.handleListProviders)
		r.Get("/providers/{providerID}/popular", s.handleProviderPopular)
		r.Get("/providers/{providerID}/latest", s.handleProviderLatest)
		r.Get("/providers/{providerID}/search", s.handleProviderSearch)
		r.Get("/providers/{providerID}/details", s.handleProviderDetails)
		r.Get("/providers/{providerID}/chapters", s.handleProviderChapters)
		r.Get("/providers/{providerID}/pages", s.handleProviderPages)

		// Subscription Routes
		r.Post("/subscriptions", s.handleSubscribeToSeries)
		r.Get("/subscriptions", s.handleListSubscriptions)
		r.Post("/subscriptions/{subID}/recheck", s.handleRecheckSubscription)
		r.Post("/subscriptions/recheck-all", s.handleRecheckAllSubscriptions)
		r.Delete("/subscriptions/{subID}", s.handleDeleteSubscription)

		// Chapter Feed
		r.Get("/feed", s.handleGetFeed)
	})

	// WebSocket route
	r.Get("/ws/progress", func(w http.ResponseWriter, r *http.Request) {
		websocket.ServeWs(s.app.WsHub, w, r)
	})

	return r
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"version": s.app.Version})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
