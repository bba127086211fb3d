package errors

import "fmt"

// ConfigFileNotFound reports an explicitly requested config file that is missing
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Check the path passed to --config",
		"Run 'keepalive config show' to see the effective defaults",
	)
}

// ConfigParseError reports a config file that could not be loaded
func ConfigParseError(path string, err error) *CLIError {
	cliErr := NewConfigError(
		fmt.Sprintf("failed to parse config %s: %v", path, err),
		"Ensure the file is valid JSON",
		"Remove the file to fall back to defaults",
	)
	cliErr.Err = err
	return cliErr
}

// InvalidConfigValue reports a config field that failed validation
func InvalidConfigValue(field, reason string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("invalid value for '%s': %s", field, reason),
		fmt.Sprintf("Fix '%s' in your config file or KEEPALIVE_ environment variables", field),
	)
}

// InvalidOutputFormat reports an unsupported --format value
func InvalidOutputFormat(format string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unsupported output format: %q", format),
		"keepalive render --format <yaml|json>",
		"Use one of: yaml, json",
	)
}

// HostUnavailable reports that no display host could be created
func HostUnavailable(kind string, err error) *CLIError {
	cliErr := NewPrerequisiteError(
		fmt.Sprintf("notification host %q is unavailable: %v", kind, err),
		"Set host.kind to one of: auto, terminal, desktop, none",
		"For desktop notifications install notify-send (Linux) or run on macOS/Windows",
	)
	cliErr.Err = err
	return cliErr
}

// MetricsServerFailed reports that the metrics endpoint could not be served
func MetricsServerFailed(addr string, err error) *CLIError {
	cliErr := NewRuntimeError(
		fmt.Sprintf("metrics server on %s failed: %v", addr, err),
		"Choose a free address with --metrics-addr or metrics.addr",
	)
	cliErr.Err = err
	return cliErr
}
