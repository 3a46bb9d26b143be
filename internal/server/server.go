// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the
// whole dependency chain is assembled in one place:
//
//	sqlite.DB → ResourceService → ResourceHandler
//	ai.Client → GenerateService → GenerateHandler
//
// Each layer only receives what it needs: the service gets the
// repository interface (not the concrete sqlite.DB), the handler gets
// the service (not the repository or the DB).
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lgsobral/eduhub/internal/ai"
	"github.com/lgsobral/eduhub/internal/handler"
	"github.com/lgsobral/eduhub/internal/middleware"
	sqliteRepo "github.com/lgsobral/eduhub/internal/repository/sqlite"
	"github.com/lgsobral/eduhub/internal/service"
)

// Config holds server configuration, assembled from the environment in
// cmd/server/main.go.
type Config struct {
	Port        int
	DBPath      string   // Datastore location (SQLite file, or ":memory:")
	CORSOrigins []string // Allowed cross-origin callers (the frontend dev servers)
}

// Server owns the router, its dependencies, and the database connection.
// The connection is closed during graceful shutdown so the WAL is
// flushed and the file lock released.
type Server struct {
	router   *chi.Mux
	config   Config
	logger   *slog.Logger
	db       *sqliteRepo.DB
	aiClient ai.Client
}

// New creates a Server with all routes wired.
//
// The ai.Client comes from the caller rather than being built here:
// main decides whether it's the real Gemini client or the offline one,
// and tests can pass a fake. Same injection seam as the repository.
func New(cfg Config, logger *slog.Logger, aiClient ai.Client) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		db:       db,
		aiClient: aiClient,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /health                → liveness + store ping
//	GET    /api/resources         → paginated, filtered listing
//	GET    /api/resources/{id}    → single resource
//	POST   /api/resources         → create
//	PUT    /api/resources/{id}    → partial update
//	DELETE /api/resources/{id}    → hard delete
//	POST   /api/ai/generate       → Smart Assist generation
//
// Middleware order matters — it executes in the order added:
// RequestID → RealIP → Recoverer → CORS → request logging.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500

	// CORS: the frontend runs on its own origin (Vite dev server in
	// development), so browsers preflight every mutating request.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Use(middleware.Logger(s.logger))

	resourceService := service.NewResourceService(s.db, s.logger)
	resourceHandler := handler.NewResourceHandler(resourceService, s.logger)

	generateService := service.NewGenerateService(s.aiClient, s.logger)
	generateHandler := handler.NewGenerateHandler(generateService, s.logger)

	healthHandler := handler.NewHealthHandler(s.db, s.logger)

	s.router.Get("/health", healthHandler.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/resources", resourceHandler.HandleList)
		r.Get("/resources/{id}", resourceHandler.HandleGetByID)
		r.Post("/resources", resourceHandler.HandleCreate)
		r.Put("/resources/{id}", resourceHandler.HandleUpdate)
		r.Delete("/resources/{id}", resourceHandler.HandleDelete)

		r.Post("/ai/generate", generateHandler.HandleGenerate)
	})
}

// Start starts the HTTP server and handles graceful shutdown:
// stop accepting connections, give in-flight requests 30 seconds to
// finish, then close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
		// WriteTimeout must leave room for the model round trip on
		// /api/ai/generate, which can legitimately take tens of seconds.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
