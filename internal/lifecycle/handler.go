package lifecycle

// ModeController switches a task between background and foreground mode.
// This interface is satisfied by *foreground.Controller but defined separately
// so lifecycle stays free of host and notification types.
type ModeController interface {
	// Enable enters foreground mode. A no-op when already in foreground.
	Enable() error

	// Disable leaves foreground mode and removes the indicator. A no-op when
	// already in background.
	Disable() error
}
