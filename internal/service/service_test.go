package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/foreground"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

// fixedClock returns a settable time
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// recordingHost is a call-recording notify.Host
type recordingHost struct {
	mu            sync.Mutex
	registerErr   error
	shows         []notify.Artifact
	registers     []notify.Artifact
	unregisters   []bool
	withdraws     []int
	withdrawErr   error
	categoryCalls int
}

func (h *recordingHost) UpsertCategory(notify.Category) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.categoryCalls++
	return nil
}

func (h *recordingHost) Show(_ int, a notify.Artifact) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shows = append(h.shows, a)
	return nil
}

func (h *recordingHost) Withdraw(slot int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.withdraws = append(h.withdraws, slot)
	return h.withdrawErr
}

func (h *recordingHost) RegisterForeground(_ int, a notify.Artifact) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.registers = append(h.registers, a)
	return h.registerErr
}

func (h *recordingHost) UnregisterForeground(_ int, removeIndicator bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unregisters = append(h.unregisters, removeIndicator)
	return nil
}

func (h *recordingHost) showCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.shows)
}

func (h *recordingHost) lastShow() notify.Artifact {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shows[len(h.shows)-1]
}

var testIcons = notify.StaticIcons{notify.DefaultIconKey: 7}

func newTestService(t *testing.T, host notify.Host, opts ...Option) *Service {
	t.Helper()
	s, err := New(host, testIcons, nil, notify.DefaultConfig(), opts...)
	require.NoError(t, err)
	return s
}

func TestNew_RendersWithoutDisplaying(t *testing.T) {
	t.Parallel()
	host := &recordingHost{}

	s := newTestService(t, host)

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 1, host.categoryCalls)
	assert.Empty(t, host.shows)
	assert.Empty(t, host.registers)
	assert.Equal(t, foreground.Background, s.Status().State)
}

func TestNew_IconUnavailable(t *testing.T) {
	t.Parallel()

	_, err := New(&recordingHost{}, notify.StaticIcons{}, nil, notify.DefaultConfig())

	require.ErrorIs(t, err, apperrors.ErrIconUnavailable)
}

func TestNew_UniqueIDs(t *testing.T) {
	t.Parallel()

	a := newTestService(t, notify.NoopHost{})
	b := newTestService(t, notify.NoopHost{})

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestService_EnableDisableBackgroundMode(t *testing.T) {
	t.Parallel()
	host := &recordingHost{}
	s := newTestService(t, host)

	require.NoError(t, s.EnableBackgroundMode())
	require.NoError(t, s.EnableBackgroundMode())
	assert.Len(t, host.registers, 1)
	assert.Equal(t, "foreground", s.Status().Mode)

	require.NoError(t, s.DisableBackgroundMode())
	assert.Equal(t, []bool{true}, host.unregisters)
	assert.Equal(t, "background", s.Status().Mode)
}

func TestService_EnableDenied(t *testing.T) {
	t.Parallel()
	host := &recordingHost{registerErr: apperrors.ErrPermissionDenied}
	s := newTestService(t, host)

	err := s.EnableBackgroundMode()

	require.ErrorIs(t, err, apperrors.ErrForegroundRegistration)
	assert.Equal(t, foreground.Background, s.Status().State)
}

func TestService_UpdateNotification(t *testing.T) {
	t.Parallel()

	t.Run("background only reconfigures", func(t *testing.T) {
		t.Parallel()
		host := &recordingHost{}
		s := newTestService(t, host)

		cfg := notify.DefaultConfig()
		cfg.Title = "Updated"
		require.NoError(t, s.UpdateNotification(cfg))

		assert.Empty(t, host.shows)
	})

	t.Run("foreground re-shows", func(t *testing.T) {
		t.Parallel()
		host := &recordingHost{}
		s := newTestService(t, host)
		require.NoError(t, s.EnableBackgroundMode())

		cfg := notify.DefaultConfig()
		cfg.Title = "Updated"
		color := notify.Color(0x00FF00)
		cfg.AccentColor = &color
		require.NoError(t, s.UpdateNotification(cfg))

		require.Equal(t, 1, host.showCount())
		got := host.lastShow()
		assert.Equal(t, "Updated", got.Title)
		assert.True(t, got.Colorized)
		assert.Equal(t, color, got.Color)
	})
}

func TestService_Destroy(t *testing.T) {
	t.Parallel()
	host := &recordingHost{}
	s := newTestService(t, host)
	require.NoError(t, s.EnableBackgroundMode())

	require.NoError(t, s.Destroy())
	assert.Equal(t, []bool{true}, host.unregisters)
	assert.Len(t, host.withdraws, 1)

	require.NoError(t, s.Destroy())
	assert.ErrorIs(t, s.EnableBackgroundMode(), apperrors.ErrServiceDestroyed)
	assert.ErrorIs(t, s.DisableBackgroundMode(), apperrors.ErrServiceDestroyed)
	assert.ErrorIs(t, s.UpdateNotification(notify.DefaultConfig()), apperrors.ErrServiceDestroyed)
	assert.ErrorIs(t, s.Run(context.Background()), apperrors.ErrServiceDestroyed)
	assert.Len(t, host.unregisters, 1)
}

func TestService_DestroyInBackground(t *testing.T) {
	t.Parallel()
	host := &recordingHost{}
	s := newTestService(t, host)

	require.NoError(t, s.Destroy())
	assert.Empty(t, host.unregisters)
	assert.Equal(t, []int{notify.DefaultSlot}, host.withdraws)
}

func TestService_DestroyReportsWithdrawFailure(t *testing.T) {
	t.Parallel()
	host := &recordingHost{withdrawErr: errors.New("gone")}
	s := newTestService(t, host)

	err := s.Destroy()

	require.ErrorContains(t, err, "withdraw notification")
	assert.ErrorIs(t, s.UpdateNotification(notify.DefaultConfig()), apperrors.ErrServiceDestroyed)
}

func TestService_RunInForeground(t *testing.T) {
	t.Parallel()
	host := &recordingHost{}
	s := newTestService(t, host, WithStartInForeground(true), WithUpdateInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return host.showCount() >= 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, foreground.Foreground, s.Status().State)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Equal(t, foreground.Background, s.Status().State)
	assert.Len(t, host.registers, 1)
	assert.Equal(t, []bool{true}, host.unregisters)
	assert.Contains(t, host.lastShow().Description, "updates")
}

func TestService_RunInBackgroundDoesNotShow(t *testing.T) {
	t.Parallel()
	host := &recordingHost{}
	s := newTestService(t, host, WithUpdateInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return s.Status().Updates >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Empty(t, host.shows)
	assert.Empty(t, host.registers)
}

func TestService_RunForegroundDeniedKeepsRunning(t *testing.T) {
	t.Parallel()
	host := &recordingHost{registerErr: errors.New("denied")}
	s := newTestService(t, host, WithStartInForeground(true), WithUpdateInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return s.Status().Updates >= 1 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, foreground.Background, s.Status().State)
	assert.Empty(t, host.unregisters)
}

func TestService_RunCancelledBeforeStart(t *testing.T) {
	t.Parallel()
	host := &recordingHost{}
	s := newTestService(t, host, WithStartInForeground(true))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.Run(ctx))
	assert.Empty(t, host.registers)
}

func TestService_Describe(t *testing.T) {
	t.Parallel()
	clk := &fixedClock{now: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	host := &recordingHost{}
	s := newTestService(t, host, WithClock(clk))
	require.NoError(t, s.EnableBackgroundMode())

	clk.Advance(90 * time.Second)
	s.refresh()

	assert.Equal(t, "up 1m30s, 1 updates", host.lastShow().Description)
	assert.Equal(t, 90*time.Second, s.Status().Uptime)

	cfg := notify.DefaultConfig()
	cfg.Description = "12 fixes"
	require.NoError(t, s.UpdateNotification(cfg))
	assert.Equal(t, "12 fixes", host.lastShow().Description)

	s.refresh()
	assert.Equal(t, "12 fixes; up 1m30s, 2 updates", host.lastShow().Description)
}

func TestService_WithTerminalHost(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	host := notify.NewTerminalHost(&out)
	s := newTestService(t, host)

	require.NoError(t, s.EnableBackgroundMode())
	assert.True(t, host.InForeground(notify.DefaultSlot))
	assert.Contains(t, out.String(), notify.DefaultTitle)

	require.NoError(t, s.DisableBackgroundMode())
	assert.False(t, host.InForeground(notify.DefaultSlot))
	_, shown := host.Shown(notify.DefaultSlot)
	assert.False(t, shown)
}

func TestWithUpdateInterval_IgnoresNonPositive(t *testing.T) {
	t.Parallel()
	s := newTestService(t, notify.NoopHost{}, WithUpdateInterval(0))
	assert.Equal(t, DefaultUpdateInterval, s.interval)
}
