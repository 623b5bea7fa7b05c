package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozaktomas/player-verify/internal/config"
	"github.com/kozaktomas/player-verify/internal/database/postgres"
	"github.com/kozaktomas/player-verify/internal/events"
	"github.com/kozaktomas/player-verify/internal/evidence"
	"github.com/kozaktomas/player-verify/internal/sessions"
	"github.com/kozaktomas/player-verify/internal/verify"
	"github.com/kozaktomas/player-verify/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the verification server",
	Long: `Start the Player Verify server.
The server accepts enrollment and verification requests from player
clients and serves the admin dashboard API, including the live event
stream.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides WEB_HOST)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if port := mustGetInt(cmd, "port"); port != 0 {
		cfg.Server.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Server.Host = host
	}

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	fmt.Printf("Connecting to PostgreSQL database...\n")
	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer pool.Close()

	enrollments := postgres.NewEnrollmentRepository(pool)
	audit := postgres.NewAuditLogRepository(pool)
	admins := postgres.NewAdminRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	fmt.Printf("Using PostgreSQL backend\n")

	hub := events.NewHub()
	evidenceStore := evidence.NewStore(cfg.Evidence.Dir, cfg.Evidence.MaxEdge)
	engine := verify.NewEngine(enrollments, audit, evidenceStore, hub, cfg.Verification.Tolerance)
	registry := sessions.NewRegistry(time.Duration(cfg.Sessions.TTLSeconds) * time.Second)

	server := web.NewServer(cfg, web.Stores{
		Enrollments: enrollments,
		Audit:       audit,
		Admins:      admins,
		Sessions:    sessionRepo,
	}, engine, registry, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Player Verify server on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
