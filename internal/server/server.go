// Package server exposes the Nucleus HTTP API: auth, per-user CRUD
// routers, and the AI assistant endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/nucleus-app/nucleus/internal/ai/assistant"
	"github.com/nucleus-app/nucleus/internal/auth"
	"github.com/nucleus-app/nucleus/internal/config"
	"github.com/nucleus-app/nucleus/internal/store"
)

// Server is the HTTP API server. All state it serves lives in the
// SQLite store and the assistant's memory layer.
type Server struct {
	config    config.ServerConfig
	store     *store.Store
	issuer    *auth.TokenIssuer
	assistant *assistant.Assistant
	metrics   *metrics
	logger    *slog.Logger
	version   string
	http      *http.Server
}

// New builds a server over its dependencies. Nothing is bound until Run.
func New(cfg config.ServerConfig, st *store.Store, issuer *auth.TokenIssuer, asst *assistant.Assistant, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config:    cfg,
		store:     st,
		issuer:    issuer,
		assistant: asst,
		metrics:   newMetrics(),
		logger:    logger,
		version:   version,
	}
}

// buildRouter constructs the chi mux with all routes wired.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(s.metrics.middleware)

	// Public, no auth required.
	r.Get("/", s.handleRoot())
	r.Get("/health", s.handleHealth())
	r.Handle("/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister())
			r.Post("/login", s.handleLogin())
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.issuer))

			r.Get("/users/me", s.handleMe())

			r.Route("/pantry", func(r chi.Router) {
				r.Get("/", s.handleListPantry())
				r.Post("/", s.handleCreatePantry())
				r.Get("/{id}", s.handleGetPantry())
				r.Put("/{id}", s.handleUpdatePantry())
				r.Delete("/{id}", s.handleDeletePantry())
			})

			r.Route("/budget", func(r chi.Router) {
				r.Get("/transactions", s.handleListTransactions())
				r.Post("/transactions", s.handleCreateTransaction())
				r.Get("/budgets", s.handleListBudgets())
				r.Post("/budgets", s.handleCreateBudget())
			})

			r.Route("/hunting", func(r chi.Router) {
				r.Get("/locations", s.handleListHuntingLocations())
				r.Post("/locations", s.handleCreateHuntingLocation())
				r.Get("/sightings", s.handleListHuntingSightings())
				r.Post("/sightings", s.handleCreateHuntingSighting())
			})

			r.Route("/photos", func(r chi.Router) {
				r.Get("/", s.handleListPhotos())
				r.Post("/", s.handleCreatePhoto())
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/events", s.handleCalendarEvents())
				r.Get("/summary", s.handleCalendarSummary())
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/chat", s.handleChat())
				r.Post("/summarize", s.handleSummarize())
			})
		})
	})

	return r
}

// Run binds the configured address and serves until ctx is cancelled,
// then drains in-flight requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         s.config.Bind,
		Handler:      s.buildRouter(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.config.Bind)
	if err != nil {
		return errors.New("server: listen failed: " + err.Error())
	}
	s.logger.Info("http server listening", "bind", s.config.Bind)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return errors.New("server: shutdown: " + err.Error())
	}
	return nil
}
