// Package lifecycle wraps a long-running task with foreground mode handling.
// The task is moved into foreground before it starts and always moved back to
// background when it returns, panics or is cancelled.
//
// The lifecycle package is intentionally minimal: no goroutines and no
// retries. A failed Enable does not stop the task; it keeps running in
// background mode.
package lifecycle

import (
	"context"
	"fmt"
)

// RunForeground runs fn with mode enabled for its duration.
//
// If ctx is already cancelled, returns ctx.Err() without touching mode or
// executing fn. Panics from mode are recovered so they cannot affect the task.
// The error from fn is returned unchanged; when fn succeeds, a Disable error
// is returned instead.
func RunForeground(ctx context.Context, mode ModeController, fn func(context.Context) error) (err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	// Enable failures are reported by the controller; the task runs in background.
	_ = safeCall(mode, ModeController.Enable)

	defer func() {
		disableErr := safeCall(mode, ModeController.Disable)
		if err == nil && disableErr != nil {
			err = fmt.Errorf("leave foreground mode: %w", disableErr)
		}
	}()

	return fn(ctx)
}

// Run is RunForeground without a context.
func Run(mode ModeController, fn func() error) error {
	return RunForeground(context.Background(), mode, func(context.Context) error {
		return fn()
	})
}

// safeCall calls a mode method with panic recovery.
func safeCall(mode ModeController, call func(ModeController) error) (err error) {
	if mode == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mode controller panic: %v", r)
		}
	}()
	return call(mode)
}
