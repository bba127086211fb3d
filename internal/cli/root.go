// keepalive - Foreground mode and persistent status notification for long-running tasks
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/keepalive

// Package cli provides Cobra-based CLI commands for keepalive. It defines the
// service commands (run, render) and configuration commands (config show,
// config path), plus version.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/keepalive/internal/cli/config"
	"github.com/ariel-frischer/keepalive/internal/cli/daemon"
	"github.com/ariel-frischer/keepalive/internal/cli/shared"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupService       = shared.GroupService
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = newRootCmd()

// newRootCmd builds the root command with all subcommands registered
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keepalive",
		Short: "keep long-running tasks alive with a persistent status notification",
		Long: `keepalive keeps a long-running task alive

Switches a task between background and foreground mode. In foreground mode a
persistent status notification is shown through the terminal or the desktop
notification system, and removed again when the task leaves foreground.

Source: https://github.com/ariel-frischer/keepalive`,
		Example: `  # Run the service until Ctrl+C
  keepalive run

  # Preview the notification for the current configuration
  keepalive render

  # Inspect the merged configuration
  keepalive config show`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddGroup(&cobra.Group{ID: GroupService, Title: "Service:"})
	cmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
	cmd.SetHelpCommandGroupID(GroupConfiguration)
	cmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	cmd.PersistentFlags().StringP(shared.FlagConfig, "c", shared.DefaultConfigPath, "Path to config file")
	cmd.PersistentFlags().BoolP(shared.FlagDebug, "d", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP(shared.FlagQuiet, "q", false, "Only log warnings and errors")

	// Register commands from subpackages
	daemon.Register(cmd)
	config.Register(cmd)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
