package daemon

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/keepalive/internal/cli/shared"
	"github.com/ariel-frischer/keepalive/internal/config"
	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/metrics"
	"github.com/ariel-frischer/keepalive/internal/service"
)

// runOptions holds the run command flags that override configuration
type runOptions struct {
	foreground  bool
	interval    time.Duration
	metricsAddr string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the keep-alive service until interrupted",
		Long: `Run the keep-alive service. While running in foreground mode a persistent
status notification is shown and refreshed every update interval. The
notification is removed when the service stops on SIGINT or SIGTERM.`,
		Example: `  # Run with the effective configuration
  keepalive run

  # Stay in background mode and refresh every 5 seconds
  keepalive run --foreground=false --interval 5s

  # Expose Prometheus metrics
  keepalive run --metrics-addr :9090`,
		Args:    cobra.NoArgs,
		GroupID: shared.GroupService,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := shared.LoadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg, opts)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runService(ctx, cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&opts.foreground, "foreground", true, "Hold foreground mode while running (overrides service.start_in_foreground)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "Notification refresh interval (overrides service.update_interval)")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides metrics.addr)")

	return cmd
}

// applyRunFlags copies explicitly set flags over cfg
func applyRunFlags(cmd *cobra.Command, cfg *config.Configuration, opts runOptions) {
	if cmd.Flags().Changed("foreground") {
		cfg.Service.StartInForeground = opts.foreground
	}
	if cmd.Flags().Changed("interval") && opts.interval > 0 {
		cfg.Service.UpdateInterval = opts.interval
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = opts.metricsAddr
	}
}

func runService(ctx context.Context, cmd *cobra.Command, cfg *config.Configuration) error {
	logger, closer, err := shared.NewLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	notifyCfg, err := cfg.NotificationConfig()
	if err != nil {
		return err
	}
	host, err := shared.NewHost(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	icons, launcher := shared.Resolvers(cfg)

	svc, err := service.New(host, icons, launcher, notifyCfg,
		service.WithLogger(logger),
		service.WithUpdateInterval(cfg.Service.UpdateInterval),
		service.WithStartInForeground(cfg.Service.StartInForeground),
	)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "cannot create service",
			"Map notification.icon_key (or navigation_empty_icon) to a non-zero id in the icons section")
	}
	defer func() {
		if err := svc.Destroy(); err != nil {
			logger.Warn().Err(err).Msg("service teardown reported an error")
		}
	}()

	errCh := make(chan error, 1)
	if cfg.Metrics.Addr != "" {
		srv := startMetricsServer(cfg.Metrics.Addr, logger, errCh)
		defer shutdownMetricsServer(srv, logger)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- svc.Run(ctx) }()

	select {
	case err := <-runErr:
		if err != nil {
			return apperrors.Wrap(err, apperrors.Runtime)
		}
		return nil
	case err := <-errCh:
		return apperrors.MetricsServerFailed(cfg.Metrics.Addr, err)
	}
}

// startMetricsServer serves /metrics in the background. Listen errors are
// sent to errCh.
func startMetricsServer(addr string, logger zerolog.Logger, errCh chan<- error) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return srv
}

func shutdownMetricsServer(srv *http.Server, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("metrics server shutdown failed")
	}
}
