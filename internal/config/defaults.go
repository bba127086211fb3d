package config

import "github.com/ariel-frischer/keepalive/internal/notify"

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"notification.channel_label":         notify.DefaultChannelLabel,
		"notification.title":                 notify.DefaultTitle,
		"notification.subtitle":              "",
		"notification.description":           "",
		"notification.icon_key":              notify.DefaultIconKey,
		"notification.accent_color":          "",
		"notification.bring_to_front_on_tap": false,
		"icons": map[string]interface{}{
			notify.DefaultIconKey: 1,
		},
		"app.entry_point":             "",
		"host.kind":                   string(notify.HostAuto),
		"service.start_in_foreground": true,
		"service.update_interval":     "30s",
		"log.level":                   "info",
		"log.file":                    "",
		"log.max_size_mb":             10,
		"log.max_backups":             3,
		"log.max_age_days":            28,
		"metrics.addr":                "",
	}
}
