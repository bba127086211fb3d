package daemon

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/keepalive/internal/cli/shared"
	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

func newRenderCmd() *cobra.Command {
	var (
		format string
		show   bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the status notification for the effective configuration",
		Long: `Render the status notification artifact from the effective configuration
and print it. With --show the artifact is also displayed once through the
configured host.`,
		Example: `  keepalive render
  keepalive render --format json
  keepalive render --show`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupService,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closer, err := shared.NewLogger(cmd, cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			notifyCfg, err := cfg.NotificationConfig()
			if err != nil {
				return err
			}

			var host notify.Host = notify.NoopHost{}
			if show {
				if host, err = shared.NewHost(cfg, cmd.ErrOrStderr()); err != nil {
					return err
				}
			}
			icons, launcher := shared.Resolvers(cfg)
			presenter := notify.NewPresenter(host, icons, launcher,
				notify.WithLogger(logger),
				notify.WithConfig(notifyCfg),
			)

			artifact, err := presenter.Render()
			if err != nil {
				return apperrors.WrapWithMessage(err, apperrors.Configuration, "cannot render notification",
					"Map notification.icon_key (or navigation_empty_icon) to a non-zero id in the icons section")
			}
			if err := shared.WriteFormatted(cmd.OutOrStdout(), format, artifact); err != nil {
				return err
			}
			if show {
				if err := presenter.Present(true); err != nil {
					return apperrors.Wrap(err, apperrors.Runtime)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", shared.FormatYAML, "Output format (yaml|json)")
	cmd.Flags().BoolVar(&show, "show", false, "Also display the notification once through the configured host")

	return cmd
}
