package cli

import (
	"github.com/ariel-frischer/keepalive/internal/cli/shared"
)

// Exit codes for the keepalive CLI (re-exported from shared)
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitFailure indicates a runtime failure
	ExitFailure = shared.ExitFailure

	// ExitConfigInvalid indicates the configuration could not be loaded or validated
	ExitConfigInvalid = shared.ExitConfigInvalid

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingDependencies indicates the notification host is unavailable
	ExitMissingDependencies = shared.ExitMissingDependency
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
