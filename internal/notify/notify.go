package notify

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
)

const (
	// DefaultChannelLabel is the category label shown to the user
	DefaultChannelLabel = "Location background service"
	// DefaultTitle is the notification title used when none is configured
	DefaultTitle = "Location background service running"
	// DefaultIconKey is the icon key used when the configured key does not resolve
	DefaultIconKey = "navigation_empty_icon"
	// DefaultChannelID identifies the notification category in the host registry
	DefaultChannelID = "location_channel_01"
	// DefaultSlot is the fixed identity under which the artifact is displayed
	DefaultSlot = 75418
)

// Color is a 24-bit RGB value (0xRRGGBB)
type Color uint32

// NeutralColor is the colour of a non-colorized artifact
const NeutralColor Color = 0

// ParseColor parses "#RRGGBB", "RRGGBB" or "#RGB"
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidColor, s)
	}
	return Color(v), nil
}

// RGB returns the red, green and blue components
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// String returns the colour as "#RRGGBB"
func (c Color) String() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// MarshalText implements encoding.TextMarshaler
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Config is the declarative description of the status notification.
// It is treated as a value: Presenter.Configure replaces it wholesale.
type Config struct {
	// ChannelLabel is the grouping category shown to the user
	ChannelLabel string `yaml:"channel_label" json:"channel_label"`

	// Title is the notification title
	Title string `yaml:"title" json:"title"`

	// Subtitle is the content text; empty means no text
	Subtitle string `yaml:"subtitle" json:"subtitle"`

	// Description is the sub text; empty means no text
	Description string `yaml:"description" json:"description"`

	// IconKey is resolved to an icon id by an IconResolver
	IconKey string `yaml:"icon_key" json:"icon_key"`

	// AccentColor colorizes the artifact when set
	AccentColor *Color `yaml:"accent_color" json:"accent_color"`

	// BringToFrontOnTap attaches an action that brings the application forward
	BringToFrontOnTap bool `yaml:"bring_to_front_on_tap" json:"bring_to_front_on_tap"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		ChannelLabel: DefaultChannelLabel,
		Title:        DefaultTitle,
		IconKey:      DefaultIconKey,
	}
}

// clone returns a copy that shares no memory with c
func (c Config) clone() Config {
	if c.AccentColor != nil {
		accent := *c.AccentColor
		c.AccentColor = &accent
	}
	return c
}

// Priority is the artifact priority hint
type Priority string

// PriorityHigh keeps the status notification near the top of the shade
const PriorityHigh Priority = "high"

// Importance is the interruption level of a notification category
type Importance string

const (
	// ImportanceMin shows the notification silently without a status bar icon
	ImportanceMin Importance = "min"
	// ImportanceDefault makes sound and shows everywhere
	ImportanceDefault Importance = "default"
)

// Visibility controls how much of a notification shows on the lock screen
type Visibility string

const (
	// VisibilityPrivate hides the content on a secure lock screen
	VisibilityPrivate Visibility = "private"
	// VisibilityPublic shows the full content on the lock screen
	VisibilityPublic Visibility = "public"
)

// Category is a notification grouping registered with the host
type Category struct {
	ID         string     `yaml:"id" json:"id"`
	Label      string     `yaml:"label" json:"label"`
	Importance Importance `yaml:"importance" json:"importance"`
	Visibility Visibility `yaml:"visibility" json:"visibility"`
}

// LaunchFlags modify how the host brings the application forward
type LaunchFlags uint8

const (
	// FlagNewTask starts the entry point in a new task if needed
	FlagNewTask LaunchFlags = 1 << iota
	// FlagResetTaskIfNeeded brings an existing task to the front instead of stacking
	FlagResetTaskIfNeeded
)

// String lists the set flags, e.g. "new_task|reset_task_if_needed"
func (f LaunchFlags) String() string {
	var names []string
	if f&FlagNewTask != 0 {
		names = append(names, "new_task")
	}
	if f&FlagResetTaskIfNeeded != 0 {
		names = append(names, "reset_task_if_needed")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// MarshalText implements encoding.TextMarshaler
func (f LaunchFlags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// EntryPoint is a handle to the application's primary view
type EntryPoint struct {
	Target string `yaml:"target" json:"target"`
}

// TapAction brings the application's main view forward when the artifact is tapped
type TapAction struct {
	Target    string      `yaml:"target" json:"target"`
	Flags     LaunchFlags `yaml:"flags" json:"flags"`
	Immutable bool        `yaml:"immutable" json:"immutable"`
}

// Artifact is the display-ready notification derived from a Config
type Artifact struct {
	ChannelID   string     `yaml:"channel_id" json:"channel_id"`
	IconKey     string     `yaml:"icon_key" json:"icon_key"`
	Icon        int        `yaml:"icon" json:"icon"`
	Title       string     `yaml:"title" json:"title"`
	Subtitle    string     `yaml:"subtitle" json:"subtitle"`
	Description string     `yaml:"description" json:"description"`
	Colorized   bool       `yaml:"colorized" json:"colorized"`
	Color       Color      `yaml:"color" json:"color"`
	TapAction   *TapAction `yaml:"tap_action" json:"tap_action"`
	Priority    Priority   `yaml:"priority" json:"priority"`
	Ongoing     bool       `yaml:"ongoing" json:"ongoing"`
}

// Body joins subtitle and description for hosts with a single text field
func (a Artifact) Body() string {
	switch {
	case a.Subtitle != "" && a.Description != "":
		return a.Subtitle + "\n" + a.Description
	case a.Subtitle != "":
		return a.Subtitle
	default:
		return a.Description
	}
}
