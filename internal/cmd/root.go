// Package cmd wires the habitta CLI: configuration, session, portal
// client, and the cobra command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "habitta",
	Short: "Habitta condominium portal CLI",
	Long: `habitta is the command-line client for the Habitta condominium portal.
It manages your login session and tenant context: log in, pick the
condominium you want to act in, and run commands scoped to it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "portal API base URL (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides config)")
}
