// Package daemon provides the CLI commands that drive the keep-alive service.
// Includes: run, render
package daemon

import (
	"github.com/spf13/cobra"
)

// Register adds the service commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newRenderCmd())
}
