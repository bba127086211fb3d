// Package foreground switches a long-running task between background mode,
// where the host may deprioritize or kill it, and foreground mode, where the
// host keeps it running in exchange for a persistent status notification.
package foreground

import (
	"fmt"

	"github.com/rs/zerolog"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/metrics"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

// State is the execution mode of the task
type State int

const (
	// Background is the initial state: the host may deprioritize the task
	Background State = iota
	// Foreground means the host guarantees continued execution
	Foreground
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case Background:
		return metrics.StateBackground
	case Foreground:
		return metrics.StateForeground
	default:
		return "unknown"
	}
}

// Renderer produces the indicator artifact. *notify.Presenter satisfies it.
type Renderer interface {
	Render() (notify.Artifact, error)
}

// Controller is the Background/Foreground state machine. State changes only
// through Enable and Disable; there is no retry, timeout or error state.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	renderer Renderer
	host     notify.ForegroundHost
	slot     int
	state    State
	logger   zerolog.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the controller logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSlot overrides the foreground slot identity
func WithSlot(slot int) Option {
	return func(c *Controller) {
		c.slot = slot
	}
}

// NewController creates a Controller in the Background state
func NewController(renderer Renderer, host notify.ForegroundHost, opts ...Option) *Controller {
	c := &Controller{
		renderer: renderer,
		host:     host,
		slot:     notify.DefaultSlot,
		state:    Background,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("component", "foreground").Int("slot", c.slot).Logger()
	return c
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// IsForeground reports whether the task holds foreground execution
func (c *Controller) IsForeground() bool {
	return c.state == Foreground
}

// Enable moves the task into foreground mode with a freshly rendered
// indicator. It is a no-op when already in Foreground. On failure the state
// stays Background and the error wraps apperrors.ErrForegroundRegistration.
func (c *Controller) Enable() error {
	if c.state == Foreground {
		return nil
	}

	a, err := c.renderer.Render()
	if err != nil {
		metrics.RecordTransition(metrics.StateForeground, false)
		c.logger.Error().Err(err).Msg("cannot enter foreground mode: indicator render failed")
		return fmt.Errorf("%w: render indicator: %w", apperrors.ErrForegroundRegistration, err)
	}

	if err := guard(func() error { return c.host.RegisterForeground(c.slot, a) }); err != nil {
		metrics.RecordTransition(metrics.StateForeground, false)
		c.logger.Error().Err(err).Msg("host refused foreground registration")
		return fmt.Errorf("%w: %w", apperrors.ErrForegroundRegistration, err)
	}

	c.state = Foreground
	metrics.RecordTransition(metrics.StateForeground, true)
	metrics.SetForeground(true)
	c.logger.Info().Str("title", a.Title).Msg("entered foreground mode")
	return nil
}

// Disable returns the task to background mode and asks the host to remove the
// indicator. It is a no-op when already in Background. The state becomes
// Background even if the host reports an error, which is logged and returned.
func (c *Controller) Disable() error {
	if c.state == Background {
		return nil
	}

	err := guard(func() error { return c.host.UnregisterForeground(c.slot, true) })
	c.state = Background
	metrics.SetForeground(false)
	metrics.RecordTransition(metrics.StateBackground, err == nil)

	if err != nil {
		c.logger.Warn().Err(err).Msg("foreground deregistration reported an error")
		return fmt.Errorf("unregister foreground: %w", err)
	}
	c.logger.Info().Msg("left foreground mode")
	return nil
}

// guard runs fn, converting a panic in host code into an error
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host panic: %v", r)
		}
	}()
	return fn()
}
