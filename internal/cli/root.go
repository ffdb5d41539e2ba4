// Package cli implements the boostd command-line interface using Cobra.
// `serve` runs the daemon; the remaining subcommands are thin clients of
// its HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "boostd",
	Short: "boostd — single-flight performance hint daemon",
	Long: `boostd converts classified workload events (launch, game, scrolling, ...)
into bounded hardware performance hints: at most one boost/mode window is
open at a time, and every window decays automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
