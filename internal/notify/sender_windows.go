//go:build windows

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// windowsSender implements visualSender for Windows using PowerShell toasts
type windowsSender struct {
	visualAvailable bool
}

// newWindowsSender creates a new Windows notification sender
func newWindowsSender() visualSender {
	return &windowsSender{
		visualAvailable: toolAvailable("powershell"),
	}
}

// newDarwinSender returns a no-op sender on windows
func newDarwinSender() visualSender {
	return &noopSender{}
}

// newLinuxSender returns a no-op sender on windows
func newLinuxSender() visualSender {
	return &noopSender{}
}

// SendVisual shows a toast. The toast tag and group make Windows replace the
// previous toast for the same slot.
func (s *windowsSender) SendVisual(slot int, a Artifact, c Category) error {
	if !s.visualAvailable {
		return nil // graceful degradation
	}
	cmd := exec.Command("powershell", "-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", windowsScript(slot, a, c))
	return cmd.Run()
}

// windowsScript builds the toast PowerShell script
func windowsScript(slot int, a Artifact, c Category) string {
	return fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$textNodes = $template.GetElementsByTagName('text')
$textNodes.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$textNodes.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
$toast.Tag = '%d'
$toast.Group = '%s'
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('keepalive').Show($toast)
`, escapeForPowerShell(a.Title), escapeForPowerShell(a.Body()), slot, escapeForPowerShell(c.ID))
}

// VisualAvailable returns true if PowerShell is available
func (s *windowsSender) VisualAvailable() bool {
	return s.visualAvailable
}

// escapeForPowerShell escapes special characters for single-quoted PowerShell strings
func escapeForPowerShell(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\'':
			b.WriteString("''")
		case '`', '$':
			b.WriteRune('`')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
