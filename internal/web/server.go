package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/player-verify/internal/config"
	"github.com/kozaktomas/player-verify/internal/database"
	"github.com/kozaktomas/player-verify/internal/events"
	"github.com/kozaktomas/player-verify/internal/sessions"
	"github.com/kozaktomas/player-verify/internal/verify"
	"github.com/kozaktomas/player-verify/internal/web/middleware"
)

// Stores groups the persistence interfaces the server depends on.
type Stores struct {
	Enrollments database.EnrollmentStore
	Audit       database.AuditLogStore
	Admins      database.AdminStore
	Sessions    middleware.SessionRepository // optional
}

// Server represents the web server
type Server struct {
	config         *config.Config
	router         *chi.Mux
	httpServer     *http.Server
	sessionManager *middleware.SessionManager
	registry       *sessions.Registry
}

// NewServer creates a new web server
func NewServer(
	cfg *config.Config,
	stores Stores,
	engine *verify.Engine,
	registry *sessions.Registry,
	hub *events.Hub,
) *Server {
	r := chi.NewRouter()

	// Create session manager with optional persistence
	sessionManager := middleware.NewSessionManager(cfg.Server.SessionSecret, stores.Sessions)

	s := &Server{
		config:         cfg,
		router:         r,
		sessionManager: sessionManager,
		registry:       registry,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(5 * time.Minute))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())

	// Set up routes
	s.setupRoutes(stores, engine, hub)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // Long timeout for SSE streams
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")

	// Stop background goroutines
	if s.sessionManager != nil {
		s.sessionManager.Stop()
	}
	if s.registry != nil {
		s.registry.Stop()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
