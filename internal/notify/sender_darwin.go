//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// darwinSender implements visualSender for macOS using osascript
type darwinSender struct {
	visualAvailable bool
}

// newDarwinSender creates a new macOS notification sender
func newDarwinSender() visualSender {
	return &darwinSender{
		visualAvailable: toolAvailable("osascript"),
	}
}

// newLinuxSender returns a no-op sender on darwin
func newLinuxSender() visualSender {
	return &noopSender{}
}

// newWindowsSender returns a no-op sender on darwin
func newWindowsSender() visualSender {
	return &noopSender{}
}

// SendVisual sends a notification using osascript
func (s *darwinSender) SendVisual(_ int, a Artifact, _ Category) error {
	if !s.visualAvailable {
		return nil // graceful degradation
	}
	cmd := exec.Command("osascript", "-e", darwinScript(a))
	return cmd.Run()
}

// darwinScript builds the AppleScript display notification command
func darwinScript(a Artifact) string {
	script := fmt.Sprintf(`display notification %q with title %q`, a.Description, a.Title)
	if a.Subtitle != "" {
		script += fmt.Sprintf(` subtitle %q`, a.Subtitle)
	}
	return script
}

// VisualAvailable returns true if osascript is available
func (s *darwinSender) VisualAvailable() bool {
	return s.visualAvailable
}
