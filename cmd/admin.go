package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kozaktomas/player-verify/internal/config"
	"github.com/kozaktomas/player-verify/internal/database"
	"github.com/kozaktomas/player-verify/internal/database/postgres"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage dashboard admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a dashboard admin account",
	Long: `Create an admin account for the monitoring dashboard.
The password is hashed with bcrypt before it is stored.`,
	RunE: runAdminCreate,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminCreateCmd)

	adminCreateCmd.Flags().String("username", "", "Login name for the account")
	adminCreateCmd.Flags().String("email", "", "Contact email for the account")
	adminCreateCmd.Flags().String("password", "", "Password for the account")
	adminCreateCmd.Flags().String("role", database.RoleTournamentAdmin,
		fmt.Sprintf("Account role (%s or %s)", database.RoleSuperAdmin, database.RoleTournamentAdmin))
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	username := mustGetString(cmd, "username")
	email := mustGetString(cmd, "email")
	password := mustGetString(cmd, "password")
	role := mustGetString(cmd, "role")

	if username == "" || email == "" || password == "" {
		return errors.New("--username, --email and --password are required")
	}
	if role != database.RoleSuperAdmin && role != database.RoleTournamentAdmin {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg := config.Load()
	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admins := postgres.NewAdminRepository(pool)
	id, err := admins.Create(ctx, database.AdminUser{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("admin %q already exists", username)
		}
		return fmt.Errorf("creating admin: %w", err)
	}

	fmt.Printf("Created admin %s (id %d, role %s)\n", username, id, role)
	return nil
}
