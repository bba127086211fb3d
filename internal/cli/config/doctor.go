package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/keepalive/internal/cli/shared"
	"github.com/ariel-frischer/keepalive/internal/health"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the status notification can be shown",
		Long: `Check the configuration, the icon mapping and the selected notification
host. Exits non-zero when keepalive would be unable to show its indicator.`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupConfiguration,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loadErr := shared.LoadConfig(cmd)
			report := health.RunHealthChecks(cfg, loadErr, cmd.OutOrStdout())

			fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
			if !report.Passed {
				return shared.NewExitError(shared.ExitMissingDependency)
			}
			return nil
		},
	}
}
