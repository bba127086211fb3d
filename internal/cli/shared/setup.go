package shared

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/keepalive/internal/config"
	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/logging"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

// Persistent flag names defined on the root command
const (
	FlagConfig = "config"
	FlagDebug  = "debug"
	FlagQuiet  = "quiet"
)

// DefaultConfigPath is the local config file read when --config is not set
const DefaultConfigPath = ".keepalive/config.json"

// LoadConfig loads configuration using the --config flag. A missing file is
// only an error when the path was given explicitly.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString(FlagConfig)
	if cmd.Flags().Changed(FlagConfig) {
		if _, err := os.Stat(path); err != nil {
			return nil, apperrors.ConfigFileNotFound(path)
		}
	}
	return config.Load(path)
}

// NewLogger builds the command logger from the log section and the
// --debug/--quiet flags.
func NewLogger(cmd *cobra.Command, cfg *config.Configuration) (zerolog.Logger, io.Closer, error) {
	debug, _ := cmd.Flags().GetBool(FlagDebug)
	quiet, _ := cmd.Flags().GetBool(FlagQuiet)

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Debug:      debug,
		Quiet:      quiet,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}, cmd.ErrOrStderr())
	if err != nil {
		return logger, closer, apperrors.WrapWithMessage(err, apperrors.Configuration, "failed to set up logging",
			"Check log.level and that log.file is writable")
	}
	return logger, closer, nil
}

// NewHost creates the notification host selected by host.kind, rendering
// terminal output to out.
func NewHost(cfg *config.Configuration, out io.Writer) (notify.Host, error) {
	host, err := notify.NewHost(notify.HostKind(cfg.Host.Kind), out)
	if err != nil {
		return nil, apperrors.HostUnavailable(cfg.Host.Kind, err)
	}
	return host, nil
}

// Resolvers returns the icon and launch resolvers described by cfg.
func Resolvers(cfg *config.Configuration) (notify.IconResolver, notify.LaunchResolver) {
	return notify.StaticIcons(cfg.Icons), notify.StaticLauncher{Target: cfg.App.EntryPoint}
}
