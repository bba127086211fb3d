package notify

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/metrics"
)

// Presenter owns the active notification Config and materializes it into
// Artifacts. It never displays anything unless Present is called with notify.
//
// A Presenter is not safe for concurrent use; callers drive it from the
// task's own goroutine.
type Presenter struct {
	display   DisplaySurface
	icons     IconResolver
	launcher  LaunchResolver
	config    Config
	channelID string
	slot      int
	logger    zerolog.Logger
}

// PresenterOption configures a Presenter
type PresenterOption func(*Presenter)

// WithLogger sets the logger used for absorbed failures
func WithLogger(logger zerolog.Logger) PresenterOption {
	return func(p *Presenter) {
		p.logger = logger
	}
}

// WithConfig sets the initial configuration
func WithConfig(cfg Config) PresenterOption {
	return func(p *Presenter) {
		p.config = cfg.clone()
	}
}

// WithChannelID overrides the category identifier
func WithChannelID(id string) PresenterOption {
	return func(p *Presenter) {
		p.channelID = id
	}
}

// WithSlot overrides the display slot identity
func WithSlot(slot int) PresenterOption {
	return func(p *Presenter) {
		p.slot = slot
	}
}

// NewPresenter creates a Presenter. launcher may be nil when the application
// has no launchable entry point.
func NewPresenter(display DisplaySurface, icons IconResolver, launcher LaunchResolver, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		display:   display,
		icons:     icons,
		launcher:  launcher,
		config:    DefaultConfig(),
		channelID: DefaultChannelID,
		slot:      DefaultSlot,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With().Str("component", "notify").Int("slot", p.slot).Logger()
	return p
}

// Configure replaces the active configuration. It has no display side effect.
func (p *Presenter) Configure(cfg Config) {
	p.config = cfg.clone()
}

// Config returns a copy of the active configuration
func (p *Presenter) Config() Config {
	return p.config.clone()
}

// Slot returns the fixed display slot
func (p *Presenter) Slot() int {
	return p.slot
}

// ChannelID returns the category identifier
func (p *Presenter) ChannelID() string {
	return p.channelID
}

// Render builds a new Artifact from the active configuration.
//
// Only an unresolvable icon fails the render (apperrors.ErrIconUnavailable).
// Tap action and category registration failures are logged and absorbed.
func (p *Presenter) Render() (Artifact, error) {
	cfg := p.config

	iconKey, icon, err := p.resolveIcon(cfg.IconKey)
	if err != nil {
		metrics.RecordRender(false)
		p.logger.Error().Err(err).Str("icon_key", cfg.IconKey).Msg("notification render failed")
		return Artifact{}, err
	}

	a := Artifact{
		ChannelID:   p.channelID,
		IconKey:     iconKey,
		Icon:        icon,
		Title:       cfg.Title,
		Subtitle:    cfg.Subtitle,
		Description: cfg.Description,
		Colorized:   false,
		Color:       NeutralColor,
		TapAction:   nil,
		Priority:    PriorityHigh,
		Ongoing:     true,
	}
	if cfg.AccentColor != nil {
		a.Colorized = true
		a.Color = *cfg.AccentColor
	}
	if cfg.BringToFrontOnTap {
		a.TapAction = p.bringToFrontAction()
	}

	label := cfg.ChannelLabel
	if label == "" {
		label = DefaultChannelLabel
	}
	p.ensureCategory(label)

	metrics.RecordRender(true)
	return a, nil
}

// Present renders the artifact and, when notify is true, shows it under the
// fixed slot so that a later call replaces it. A host denial is logged and
// returned as apperrors.ErrDisplayPermissionDenied.
func (p *Presenter) Present(notify bool) error {
	a, err := p.Render()
	if err != nil {
		return err
	}
	if !notify {
		return nil
	}

	err = guard(func() error { return p.display.Show(p.slot, a) })
	switch {
	case err == nil:
		metrics.RecordPresent(metrics.ResultSuccess)
		return nil
	case errors.Is(err, apperrors.ErrPermissionDenied):
		metrics.RecordPresent(metrics.ResultDenied)
		p.logger.Warn().Err(err).Msg("host denied notification display")
		return fmt.Errorf("%w: %w", apperrors.ErrDisplayPermissionDenied, err)
	default:
		metrics.RecordPresent(metrics.ResultFailure)
		p.logger.Error().Err(err).Msg("failed to show notification")
		return fmt.Errorf("show notification: %w", err)
	}
}

// Withdraw removes whatever the presenter displayed under its slot
func (p *Presenter) Withdraw() error {
	if err := guard(func() error { return p.display.Withdraw(p.slot) }); err != nil {
		p.logger.Warn().Err(err).Msg("failed to withdraw notification")
		return fmt.Errorf("withdraw notification: %w", err)
	}
	return nil
}

// resolveIcon resolves key, retrying with DefaultIconKey when key yields
// nothing. The default key goes through the same resolver.
func (p *Presenter) resolveIcon(key string) (string, int, error) {
	if id, ok := p.lookupIcon(key); ok {
		return key, id, nil
	}
	if key != DefaultIconKey {
		if id, ok := p.lookupIcon(DefaultIconKey); ok {
			metrics.RecordIconFallback()
			p.logger.Warn().Str("icon_key", key).Str("fallback", DefaultIconKey).Msg("icon not found, using default")
			return DefaultIconKey, id, nil
		}
	}
	return "", 0, fmt.Errorf("%w: %q (default %q)", apperrors.ErrIconUnavailable, key, DefaultIconKey)
}

func (p *Presenter) lookupIcon(key string) (int, bool) {
	if p.icons == nil {
		return 0, false
	}
	var id int
	err := guard(func() error {
		var err error
		id, err = p.icons.Resolve(key)
		return err
	})
	if err != nil {
		p.logger.Debug().Err(err).Str("icon_key", key).Msg("icon lookup failed")
		return 0, false
	}
	return id, id != 0
}

// bringToFrontAction builds the tap action, or nil when the application has
// no entry point or the lookup fails
func (p *Presenter) bringToFrontAction() *TapAction {
	if p.launcher == nil {
		p.logger.Debug().Msg("no launch resolver, tap action omitted")
		return nil
	}
	var entry *EntryPoint
	err := guard(func() error {
		var err error
		entry, err = p.launcher.PrimaryEntryPoint()
		return err
	})
	if err != nil {
		p.logger.Warn().Err(fmt.Errorf("%w: %w", apperrors.ErrTapActionUnavailable, err)).Msg("tap action omitted")
		return nil
	}
	if entry == nil {
		p.logger.Debug().Msg("application has no entry point, tap action omitted")
		return nil
	}
	return &TapAction{
		Target:    entry.Target,
		Flags:     FlagNewTask | FlagResetTaskIfNeeded,
		Immutable: true,
	}
}

// ensureCategory upserts the notification category; failures are logged only
func (p *Presenter) ensureCategory(label string) {
	c := Category{
		ID:         p.channelID,
		Label:      label,
		Importance: ImportanceMin,
		Visibility: VisibilityPrivate,
	}
	if err := guard(func() error { return p.display.UpsertCategory(c) }); err != nil {
		metrics.RecordCategoryFailure()
		p.logger.Warn().Err(fmt.Errorf("%w: %w", apperrors.ErrCategoryRegistration, err)).
			Str("channel_id", c.ID).Msg("notification category not registered")
	}
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
