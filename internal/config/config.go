// Package config loads keepalive configuration from defaults, the global and
// local JSON files, and KEEPALIVE_ environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

// EnvPrefix is the prefix of environment variable overrides
const EnvPrefix = "KEEPALIVE_"

// Configuration represents the keepalive configuration.
// An icon id of 0 leaves the key unmapped; config files merge into the
// default icon map, so this is how a default mapping is dropped.
type Configuration struct {
	Notification NotificationSettings `koanf:"notification" json:"notification" yaml:"notification"`
	Icons        map[string]int       `koanf:"icons" json:"icons" yaml:"icons" validate:"dive,gte=0"`
	App          AppSettings          `koanf:"app" json:"app" yaml:"app"`
	Host         HostSettings         `koanf:"host" json:"host" yaml:"host"`
	Service      ServiceSettings      `koanf:"service" json:"service" yaml:"service"`
	Log          LogSettings          `koanf:"log" json:"log" yaml:"log"`
	Metrics      MetricsSettings      `koanf:"metrics" json:"metrics" yaml:"metrics"`
}

// NotificationSettings is the file form of notify.Config
type NotificationSettings struct {
	ChannelLabel      string `koanf:"channel_label" json:"channel_label" yaml:"channel_label" validate:"required"`
	Title             string `koanf:"title" json:"title" yaml:"title"`
	Subtitle          string `koanf:"subtitle" json:"subtitle" yaml:"subtitle"`
	Description       string `koanf:"description" json:"description" yaml:"description"`
	IconKey           string `koanf:"icon_key" json:"icon_key" yaml:"icon_key" validate:"required"`
	AccentColor       string `koanf:"accent_color" json:"accent_color,omitempty" yaml:"accent_color,omitempty" validate:"omitempty,accentcolor"`
	BringToFrontOnTap bool   `koanf:"bring_to_front_on_tap" json:"bring_to_front_on_tap" yaml:"bring_to_front_on_tap"`
}

// AppSettings describes the application the tap action brings to front
type AppSettings struct {
	EntryPoint string `koanf:"entry_point" json:"entry_point" yaml:"entry_point"`
}

// HostSettings selects the notification host
type HostSettings struct {
	Kind string `koanf:"kind" json:"kind" yaml:"kind" validate:"required,hostkind"`
}

// ServiceSettings controls the keep-alive service loop
type ServiceSettings struct {
	StartInForeground bool          `koanf:"start_in_foreground" json:"start_in_foreground" yaml:"start_in_foreground"`
	UpdateInterval    time.Duration `koanf:"update_interval" json:"update_interval" yaml:"update_interval" validate:"min=100ms"`
}

// LogSettings controls the logger and its rotating log file
type LogSettings struct {
	Level      string `koanf:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	File       string `koanf:"file" json:"file,omitempty" yaml:"file,omitempty"`
	MaxSizeMB  int    `koanf:"max_size_mb" json:"max_size_mb" yaml:"max_size_mb" validate:"min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" json:"max_backups" yaml:"max_backups" validate:"min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age_days" json:"max_age_days" yaml:"max_age_days" validate:"min=0,max=365"`
}

// MetricsSettings controls the Prometheus endpoint; empty Addr disables it
type MetricsSettings struct {
	Addr string `koanf:"addr" json:"addr,omitempty" yaml:"addr,omitempty" validate:"omitempty,hostname_port"`
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	// Load global config if it exists
	if globalPath, err := GlobalConfigPath(); err == nil {
		if err := loadFile(k, globalPath); err != nil {
			return nil, err
		}
	}

	// Load local config if it exists
	if localConfigPath != "" {
		if err := loadFile(k, localConfigPath); err != nil {
			return nil, err
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Configuration, "failed to read environment")
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Configuration, "failed to unmarshal config",
			"Check value types in your config file and KEEPALIVE_ environment variables")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	cfg.Log.File = expandHomePath(cfg.Log.File)

	return &cfg, nil
}

// GlobalConfigPath returns the path of the per-user config file
func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".keepalive", "config.json"), nil
}

// loadFile merges a JSON config file into k. A missing file is skipped.
func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return apperrors.ConfigParseError(path, describeParseError(path, err))
	}
	return nil
}

// NotificationConfig converts the notification section into a notify.Config
func (c *Configuration) NotificationConfig() (notify.Config, error) {
	n := c.Notification
	cfg := notify.Config{
		ChannelLabel:      n.ChannelLabel,
		Title:             n.Title,
		Subtitle:          n.Subtitle,
		Description:       n.Description,
		IconKey:           n.IconKey,
		BringToFrontOnTap: n.BringToFrontOnTap,
	}
	if n.AccentColor != "" {
		color, err := notify.ParseColor(n.AccentColor)
		if err != nil {
			return notify.Config{}, apperrors.InvalidConfigValue("notification.accent_color", err.Error())
		}
		cfg.AccentColor = &color
	}
	return cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: KEEPALIVE_NOTIFICATION__ACCENT_COLOR -> notification.accent_color
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
