package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/player-verify/internal/database"
	"github.com/kozaktomas/player-verify/internal/events"
	"github.com/kozaktomas/player-verify/internal/verify"
	"github.com/kozaktomas/player-verify/internal/web/handlers"
	"github.com/kozaktomas/player-verify/internal/web/middleware"
)

func (s *Server) setupRoutes(stores Stores, engine *verify.Engine, hub *events.Hub) {
	// Create handlers
	authHandler := handlers.NewAuthHandler(stores.Admins, s.sessionManager)
	playersHandler := handlers.NewPlayersHandler(s.config, stores.Enrollments)
	verifyHandler := handlers.NewVerifyHandler(engine, s.registry)
	logsHandler := handlers.NewLogsHandler(stores.Audit, stores.Enrollments)
	sessionsHandler := handlers.NewSessionsHandler(s.registry, hub)
	eventsHandler := handlers.NewEventsHandler(hub)
	configHandler := handlers.NewConfigHandler(s.config)
	adminsHandler := handlers.NewAdminsHandler(stores.Admins)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Admin auth
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/status", authHandler.Status)

		// Verification client endpoints. Clients authenticate through
		// the biometric check itself, not through admin sessions.
		r.Get("/config", configHandler.Get)
		r.Post("/register", playersHandler.Register)
		r.Post("/verify", verifyHandler.Verify)
		r.Post("/sessions/start", sessionsHandler.Start)
		r.Post("/sessions/end", sessionsHandler.End)

		// Admin dashboard endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.sessionManager))

			r.Get("/players", playersHandler.List)
			r.Get("/players/{playerID}/logs", logsHandler.PlayerLogs)
			r.Get("/logs/recent", logsHandler.Recent)
			r.Get("/sessions/active", sessionsHandler.Active)
			r.Get("/events", eventsHandler.Stream)

			// Account management is restricted to super admins.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(database.RoleSuperAdmin))
				r.Post("/admins", adminsHandler.Create)
			})
		})
	})

	// Placeholder page for the dashboard frontend
	s.router.Get("/", s.serveIndex)
}

// serveIndex serves a minimal landing page pointing at the API.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Player Verify</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1a1a2e; color: #eee; }
        .container { text-align: center; }
        h1 { color: #00d9ff; }
        p { color: #aaa; }
        a { color: #00d9ff; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Player Verification Server</h1>
        <p>API is available at <a href="/api/v1/health">/api/v1/health</a></p>
    </div>
</body>
</html>`))
}
