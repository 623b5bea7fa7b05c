package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "player-verify",
	Short: "Identity verification server for competitive gaming",
	Long: `Player Verify is the server side of a tournament identity system.
It enrolls players with a facial template and a device fingerprint,
re-verifies both periodically during play, and keeps an append-only
audit trail that admin dashboards can follow live.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
