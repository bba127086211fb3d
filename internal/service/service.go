// Package service implements the keep-alive service: it owns the notification
// presenter and the foreground controller for one long-running task and
// refreshes the status notification while the task runs.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ariel-frischer/keepalive/internal/clock"
	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/foreground"
	"github.com/ariel-frischer/keepalive/internal/lifecycle"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

// DefaultUpdateInterval is how often Run refreshes the notification
const DefaultUpdateInterval = 30 * time.Second

// Service is the keep-alive service. All methods are safe for concurrent
// use; presenter and controller calls are serialized by the service lock.
type Service struct {
	mu sync.Mutex

	id         string
	presenter  *notify.Presenter
	controller *foreground.Controller
	base       notify.Config

	interval          time.Duration
	startInForeground bool
	clock             clock.Clock
	logger            zerolog.Logger

	started   time.Time
	updates   int
	destroyed bool
}

// Status is a snapshot of the service
type Status struct {
	ID      string           `json:"id" yaml:"id"`
	State   foreground.State `json:"-" yaml:"-"`
	Mode    string           `json:"mode" yaml:"mode"`
	Updates int              `json:"updates" yaml:"updates"`
	Uptime  time.Duration    `json:"uptime" yaml:"uptime"`
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the service logger; it is also handed to the presenter and
// controller
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithUpdateInterval sets the refresh interval of Run
func WithUpdateInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithStartInForeground makes Run enter foreground mode for its duration
func WithStartInForeground(enabled bool) Option {
	return func(s *Service) {
		s.startInForeground = enabled
	}
}

// WithClock overrides the time source used for the status text
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// New creates the service and renders the initial notification without
// displaying it. It fails only when no icon can be resolved.
func New(host notify.Host, icons notify.IconResolver, launcher notify.LaunchResolver, cfg notify.Config, opts ...Option) (*Service, error) {
	s := &Service{
		id:       uuid.NewString(),
		base:     cfg,
		interval: DefaultUpdateInterval,
		clock:    clock.RealClock{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("service_id", s.id).Logger()

	s.presenter = notify.NewPresenter(host, icons, launcher,
		notify.WithLogger(s.logger),
		notify.WithConfig(cfg),
	)
	s.controller = foreground.NewController(s.presenter, host,
		foreground.WithLogger(s.logger),
		foreground.WithSlot(s.presenter.Slot()),
	)

	if err := s.presenter.Present(false); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	s.started = s.clock.Now()
	s.logger.Debug().Msg("service created")
	return s, nil
}

// ID returns the session identifier of the service
func (s *Service) ID() string {
	return s.id
}

// EnableBackgroundMode moves the task into foreground mode so the host keeps
// it running while the user is away.
func (s *Service) EnableBackgroundMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return apperrors.ErrServiceDestroyed
	}
	return s.controller.Enable()
}

// DisableBackgroundMode returns the task to background mode and removes the
// indicator.
func (s *Service) DisableBackgroundMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return apperrors.ErrServiceDestroyed
	}
	return s.controller.Disable()
}

// UpdateNotification replaces the notification config. The notification is
// re-shown only while in foreground mode.
func (s *Service) UpdateNotification(cfg notify.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return apperrors.ErrServiceDestroyed
	}
	s.base = cfg
	s.presenter.Configure(cfg)
	return s.presenter.Present(s.controller.IsForeground())
}

// Status returns a snapshot of the service
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.controller.State()
	return Status{
		ID:      s.id,
		State:   state,
		Mode:    state.String(),
		Updates: s.updates,
		Uptime:  s.clock.Now().Sub(s.started),
	}
}

// Run keeps the service alive until ctx is cancelled, refreshing the
// notification every update interval. When configured to start in
// foreground, foreground mode is held for the whole run and released on
// return. Cancellation is a normal shutdown and returns nil.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	destroyed := s.destroyed
	s.mu.Unlock()
	if destroyed {
		return apperrors.ErrServiceDestroyed
	}

	s.logger.Info().
		Dur("interval", s.interval).
		Bool("foreground", s.startInForeground).
		Msg("service running")

	var err error
	if s.startInForeground {
		err = lifecycle.RunForeground(ctx, lockedMode{s}, s.loop)
	} else {
		err = s.loop(ctx)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	s.logger.Info().Err(err).Msg("service stopped")
	return err
}

// Destroy leaves foreground mode, clears the notification slot and releases
// the service. Later calls to any method except Destroy and Status return
// ErrServiceDestroyed.
func (s *Service) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return nil
	}
	s.destroyed = true
	err := errors.Join(s.controller.Disable(), s.presenter.Withdraw())
	s.logger.Debug().Msg("service destroyed")
	return err
}

func (s *Service) loop(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh()
		}
	}
}

// refresh updates the description with the run status and re-presents
func (s *Service) refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}

	s.updates++
	cfg := s.base
	cfg.Description = s.describe()
	s.presenter.Configure(cfg)

	if err := s.presenter.Present(s.controller.IsForeground()); err != nil {
		s.logger.Warn().Err(err).Int("update", s.updates).Msg("notification refresh failed")
	}
}

// describe renders the status text shown as the notification description
func (s *Service) describe() string {
	uptime := s.clock.Now().Sub(s.started).Round(time.Second)
	status := fmt.Sprintf("up %s, %d updates", uptime, s.updates)
	if s.base.Description == "" {
		return status
	}
	return s.base.Description + "; " + status
}

// lockedMode exposes the controller to lifecycle under the service lock
type lockedMode struct {
	s *Service
}

func (m lockedMode) Enable() error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.destroyed {
		return apperrors.ErrServiceDestroyed
	}
	return m.s.controller.Enable()
}

func (m lockedMode) Disable() error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.controller.Disable()
}
