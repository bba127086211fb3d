package notify

import (
	"fmt"
	"runtime"
	"sync"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
)

// visualSender shows an artifact through a native desktop notification tool
type visualSender interface {
	// SendVisual shows a, replacing the previous notification for slot where
	// the platform supports it
	SendVisual(slot int, a Artifact, c Category) error

	// VisualAvailable returns true if visual notifications are supported
	VisualAvailable() bool
}

// newVisualSender creates a platform-specific sender based on the current OS.
// For unsupported platforms, it returns a no-op sender.
func newVisualSender() visualSender {
	switch runtime.GOOS {
	case "darwin":
		return newDarwinSender()
	case "linux":
		return newLinuxSender()
	case "windows":
		return newWindowsSender()
	default:
		return &noopSender{}
	}
}

// noopSender is a sender that does nothing (for unsupported platforms)
type noopSender struct{}

func (s *noopSender) SendVisual(int, Artifact, Category) error { return nil }
func (s *noopSender) VisualAvailable() bool                    { return false }

// DesktopHost displays artifacts as native desktop notifications.
// Desktops have no foreground execution mechanism of their own; registration
// succeeds whenever the indicator can be shown.
type DesktopHost struct {
	mu         sync.Mutex
	sender     visualSender
	categories map[string]Category
	shown      map[int]Artifact
	foreground map[int]bool
}

// NewDesktopHost creates a DesktopHost for the current platform
func NewDesktopHost() *DesktopHost {
	return newDesktopHostWithSender(newVisualSender())
}

func newDesktopHostWithSender(sender visualSender) *DesktopHost {
	return &DesktopHost{
		sender:     sender,
		categories: make(map[string]Category),
		shown:      make(map[int]Artifact),
		foreground: make(map[int]bool),
	}
}

// Available reports whether native notifications can be shown on this system
func (h *DesktopHost) Available() bool {
	return h.sender.VisualAvailable()
}

// UpsertCategory records the category; desktops have no category registry
func (h *DesktopHost) UpsertCategory(c Category) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.categories[c.ID] = c
	return nil
}

// Show sends a as a desktop notification
func (h *DesktopHost) Show(slot int, a Artifact) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.showLocked(slot, a)
}

func (h *DesktopHost) showLocked(slot int, a Artifact) error {
	if !h.sender.VisualAvailable() {
		return fmt.Errorf("%w: no desktop notification tool on %s", apperrors.ErrPermissionDenied, Platform())
	}
	if err := h.sender.SendVisual(slot, a, h.categories[a.ChannelID]); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	h.shown[slot] = a
	return nil
}

// Withdraw forgets the artifact for slot. Desktop notifications expire on
// their own and cannot be closed from here.
func (h *DesktopHost) Withdraw(slot int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.shown, slot)
	return nil
}

// RegisterForeground shows a and marks slot as foreground
func (h *DesktopHost) RegisterForeground(slot int, a Artifact) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.showLocked(slot, a); err != nil {
		return err
	}
	h.foreground[slot] = true
	return nil
}

// UnregisterForeground clears the foreground mark for slot
func (h *DesktopHost) UnregisterForeground(slot int, removeIndicator bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.foreground, slot)
	if removeIndicator {
		delete(h.shown, slot)
	}
	return nil
}
