package notify

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"golang.org/x/term"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
)

// DisplaySurface is the host's notification registry and live display
type DisplaySurface interface {
	// UpsertCategory creates or updates a category. Upserting an existing
	// category with the same label is a no-op.
	UpsertCategory(c Category) error

	// Show displays a under slot, replacing whatever occupied the slot
	Show(slot int, a Artifact) error

	// Withdraw removes whatever is displayed under slot
	Withdraw(slot int) error
}

// ForegroundHost grants foreground execution in exchange for a persistent indicator
type ForegroundHost interface {
	// RegisterForeground keeps the task alive and shows a under slot.
	// Hosts return an error wrapping apperrors.ErrPermissionDenied on denial.
	RegisterForeground(slot int, a Artifact) error

	// UnregisterForeground releases foreground execution. When removeIndicator
	// is true the indicator is withdrawn as well.
	UnregisterForeground(slot int, removeIndicator bool) error
}

// Host is a complete host: display surface plus foreground mechanism
type Host interface {
	DisplaySurface
	ForegroundHost
}

// HostKind selects a Host implementation
type HostKind string

const (
	// HostAuto picks the terminal host on a TTY and the desktop host otherwise
	HostAuto HostKind = "auto"
	// HostTerminal renders into the terminal
	HostTerminal HostKind = "terminal"
	// HostDesktop uses native desktop notifications
	HostDesktop HostKind = "desktop"
	// HostNone displays nothing
	HostNone HostKind = "none"
)

// ValidHostKind checks if the given string is a valid host kind
func ValidHostKind(s string) bool {
	switch HostKind(s) {
	case HostAuto, HostTerminal, HostDesktop, HostNone:
		return true
	default:
		return false
	}
}

// NewHost creates the Host for kind. Terminal output goes to out.
func NewHost(kind HostKind, out io.Writer) (Host, error) {
	switch kind {
	case HostAuto:
		if isTerminal(out) {
			return NewTerminalHost(out), nil
		}
		return NewDesktopHost(), nil
	case HostTerminal:
		return NewTerminalHost(out), nil
	case HostDesktop:
		return NewDesktopHost(), nil
	case HostNone:
		return NoopHost{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidHostKind, kind)
	}
}

// Platform returns the current operating system name
func Platform() string {
	return runtime.GOOS
}

// isTerminal reports whether w is a file attached to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// NoopHost accepts every call and displays nothing
type NoopHost struct{}

func (NoopHost) UpsertCategory(Category) error          { return nil }
func (NoopHost) Show(int, Artifact) error               { return nil }
func (NoopHost) Withdraw(int) error                     { return nil }
func (NoopHost) RegisterForeground(int, Artifact) error { return nil }
func (NoopHost) UnregisterForeground(int, bool) error   { return nil }
