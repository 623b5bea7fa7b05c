package cmd

import (
	"fmt"

	"github.com/kozaktomas/player-verify/internal/device"
	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Print this machine's device fingerprint",
	Long: `Print the machine identifier this host would present during
enrollment and verification. Useful for diagnosing device mismatch
failures.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(device.CurrentInfo().String())
	},
}

func init() {
	rootCmd.AddCommand(deviceCmd)
}
