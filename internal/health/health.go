// Package health checks whether keepalive can show its status notification
// on this system.
package health

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/keepalive/internal/config"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// add appends a result, failing the report when the check failed
func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// RunHealthChecks runs all health checks against cfg and the real system.
// A nil cfg reports loadErr as the configuration failure and skips the
// checks that depend on it.
func RunHealthChecks(cfg *config.Configuration, loadErr error, out io.Writer) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 4),
		Passed: true,
	}

	report.add(CheckConfig(loadErr))
	if cfg == nil {
		return report
	}

	caps := notify.DetectTerminalCapabilities(out)
	desktop := notify.NewDesktopHost().Available()

	report.add(CheckIcons(cfg))
	report.add(CheckHost(notify.HostKind(cfg.Host.Kind), caps.IsTTY, desktop))
	report.add(CheckDesktop(desktop))

	return report
}

// CheckConfig reports whether the configuration loaded and validated
func CheckConfig(loadErr error) CheckResult {
	if loadErr != nil {
		return CheckResult{
			Name:    "Configuration",
			Passed:  false,
			Message: fmt.Sprintf("Configuration invalid: %v", loadErr),
		}
	}
	return CheckResult{
		Name:    "Configuration",
		Passed:  true,
		Message: "Configuration valid",
	}
}

// CheckIcons checks that the configured icon, or the default fallback,
// resolves to an icon id
func CheckIcons(cfg *config.Configuration) CheckResult {
	icons := notify.StaticIcons(cfg.Icons)
	key := cfg.Notification.IconKey

	if id, _ := icons.Resolve(key); id != 0 {
		return CheckResult{Name: "Icon", Passed: true, Message: fmt.Sprintf("Icon %q resolves to %d", key, id)}
	}
	if id, _ := icons.Resolve(notify.DefaultIconKey); id != 0 {
		return CheckResult{
			Name:    "Icon",
			Passed:  true,
			Message: fmt.Sprintf("Icon %q missing, falling back to %q", key, notify.DefaultIconKey),
		}
	}
	return CheckResult{
		Name:    "Icon",
		Passed:  false,
		Message: fmt.Sprintf("Neither %q nor %q is mapped in icons", key, notify.DefaultIconKey),
	}
}

// CheckHost checks that the selected host kind can display the indicator
func CheckHost(kind notify.HostKind, tty, desktopAvailable bool) CheckResult {
	name := fmt.Sprintf("Host (%s)", kind)
	switch kind {
	case notify.HostAuto:
		if tty {
			return CheckResult{Name: name, Passed: true, Message: "Terminal indicator will be used"}
		}
		if desktopAvailable {
			return CheckResult{Name: name, Passed: true, Message: "Desktop notifications will be used"}
		}
		return CheckResult{Name: name, Passed: false, Message: "No terminal and no desktop notifier available"}
	case notify.HostTerminal:
		if tty {
			return CheckResult{Name: name, Passed: true, Message: "Terminal indicator available"}
		}
		return CheckResult{Name: name, Passed: true, Message: "Output is not a terminal, indicator prints plain lines"}
	case notify.HostDesktop:
		if desktopAvailable {
			return CheckResult{Name: name, Passed: true, Message: "Desktop notifications available"}
		}
		return CheckResult{Name: name, Passed: false, Message: "Desktop notifier not available, displays will be denied"}
	case notify.HostNone:
		return CheckResult{Name: name, Passed: true, Message: "Notifications disabled"}
	default:
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("Unknown host kind %q", kind)}
	}
}

// CheckDesktop reports the native notifier for the current platform
func CheckDesktop(available bool) CheckResult {
	name := fmt.Sprintf("Desktop notifier (%s)", notify.Platform())
	if !available {
		return CheckResult{Name: name, Passed: true, Message: "Desktop notifier not found (optional)"}
	}
	return CheckResult{Name: name, Passed: true, Message: "Desktop notifier found"}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		if check.Passed {
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		} else {
			output += fmt.Sprintf("✗ Error: %s: %s\n", check.Name, check.Message)
		}
	}

	return output
}
