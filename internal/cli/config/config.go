package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/keepalive/internal/cli/shared"
	"github.com/ariel-frischer/keepalive/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Inspect keepalive configuration",
		Long:    "Inspect the effective keepalive configuration and where it is loaded from.",
		GroupID: shared.GroupConfiguration,
	}
	cmd.AddCommand(newShowCmd(), newPathCmd())
	return cmd
}

func newShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the global config file,
the local config file and KEEPALIVE_ environment variables.`,
		Example: `  keepalive config show
  keepalive config show --format json
  KEEPALIVE_NOTIFICATION__TITLE="Tracking" keepalive config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return shared.WriteFormatted(cmd.OutOrStdout(), format, cfg)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", shared.FormatYAML, "Output format (yaml|json)")
	return cmd
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file locations in load order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if global, err := config.GlobalConfigPath(); err == nil {
				fmt.Fprintf(out, "global: %s\n", global)
			}
			local, _ := cmd.Flags().GetString(shared.FlagConfig)
			fmt.Fprintf(out, "local:  %s\n", local)
			fmt.Fprintf(out, "env:    %s*\n", config.EnvPrefix)
			return nil
		},
	}
}
