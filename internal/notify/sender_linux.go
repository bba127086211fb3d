//go:build linux

package notify

import (
	"fmt"
	"os"
	"os/exec"
)

// linuxSender implements visualSender for Linux using notify-send
type linuxSender struct {
	visualAvailable bool
}

// newLinuxSender creates a new Linux notification sender
func newLinuxSender() visualSender {
	return &linuxSender{
		visualAvailable: toolAvailable("notify-send") && hasDisplay(),
	}
}

// newDarwinSender returns a no-op sender on linux
func newDarwinSender() visualSender {
	return &noopSender{}
}

// newWindowsSender returns a no-op sender on linux
func newWindowsSender() visualSender {
	return &noopSender{}
}

// hasDisplay checks if a display environment is available
func hasDisplay() bool {
	// Check for X11 display
	if os.Getenv("DISPLAY") != "" {
		return true
	}
	// Check for Wayland display
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// SendVisual sends a notification using notify-send. The synchronous hint
// makes most notification daemons replace the previous bubble for the slot.
func (s *linuxSender) SendVisual(slot int, a Artifact, c Category) error {
	if !s.visualAvailable {
		return nil // graceful degradation
	}
	cmd := exec.Command("notify-send", linuxArgs(slot, a, c)...)
	return cmd.Run()
}

// linuxArgs builds the notify-send argument list
func linuxArgs(slot int, a Artifact, c Category) []string {
	urgency := "normal"
	if c.Importance == ImportanceMin {
		urgency = "low"
	}
	args := []string{
		"-u", urgency,
		"-a", "keepalive",
		"-h", fmt.Sprintf("string:x-canonical-private-synchronous:keepalive-%d", slot),
	}
	if c.Label != "" {
		args = append(args, "-c", c.Label)
	}
	return append(args, a.Title, a.Body())
}

// VisualAvailable returns true if notify-send is available and display is present
func (s *linuxSender) VisualAvailable() bool {
	return s.visualAvailable
}
