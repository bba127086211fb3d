package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error kinds with errors.Is().
var (
	// ErrIconUnavailable indicates that neither the configured icon key nor the
	// default icon key resolved to a usable icon.
	ErrIconUnavailable = errors.New("notification icon unavailable")

	// ErrCategoryRegistration indicates that the notification category could not
	// be upserted in the host registry. Never fatal for a render.
	ErrCategoryRegistration = errors.New("notification category registration failed")

	// ErrTapActionUnavailable indicates that the bring-to-front tap action could
	// not be built. Never fatal for a render.
	ErrTapActionUnavailable = errors.New("tap action unavailable")

	// ErrDisplayPermissionDenied indicates that the host refused to show the
	// notification on its live display surface.
	ErrDisplayPermissionDenied = errors.New("display permission denied")

	// ErrForegroundRegistration indicates that the task could not be moved into
	// foreground execution.
	ErrForegroundRegistration = errors.New("foreground registration failed")

	// ErrPermissionDenied is returned by host implementations when the host
	// refuses an operation.
	ErrPermissionDenied = errors.New("permission denied by host")

	// ErrInvalidColor indicates that an accent colour string is not #RRGGBB.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidHostKind indicates an unknown host kind in configuration.
	ErrInvalidHostKind = errors.New("invalid host kind")

	// ErrServiceDestroyed indicates a call on a service after Destroy.
	ErrServiceDestroyed = errors.New("service destroyed")
)
