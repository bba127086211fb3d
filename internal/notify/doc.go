// Package notify renders and displays the persistent status notification that
// a host requires while a long-running task runs in foreground mode.
//
// A Presenter owns the active Config and turns it into a fresh Artifact on
// every render, so no optional field (tap action, accent colour) can leak from
// a previous configuration. Everything host-specific is injected:
//
//   - IconResolver maps a logical icon key to an icon id
//   - LaunchResolver finds the application's primary entry point
//   - DisplaySurface registers categories and shows or withdraws artifacts
//   - ForegroundHost attaches an artifact to foreground execution
//
// # Hosts
//
//   - TerminalHost: prints artifacts and keeps a spinner running while in
//     foreground mode
//   - DesktopHost: native desktop notifications via notify-send (Linux),
//     osascript (macOS) or PowerShell (Windows)
//   - NoopHost: accepts everything and displays nothing
//
// # Usage
//
//	presenter := notify.NewPresenter(host, notify.StaticIcons{"navigation_empty_icon": 1}, nil)
//	presenter.Configure(notify.Config{Title: "Tracking", IconKey: "navigation_empty_icon"})
//	if err := presenter.Present(true); err != nil {
//		// already logged; errors.Is(err, apperrors.ErrDisplayPermissionDenied) etc.
//	}
package notify
