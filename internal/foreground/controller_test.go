package foreground

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

var errMockHost = errors.New("mock host error")

// mockRenderer returns a fixed artifact or error and counts calls
type mockRenderer struct {
	artifact notify.Artifact
	err      error
	calls    int
}

func (m *mockRenderer) Render() (notify.Artifact, error) {
	m.calls++
	return m.artifact, m.err
}

// mockForegroundHost records foreground registrations
type mockForegroundHost struct {
	registerErr     error
	unregisterErr   error
	registerPanic   any
	registerCalls   []notify.Artifact
	registerSlots   []int
	unregisterCalls []bool
}

func (m *mockForegroundHost) RegisterForeground(slot int, a notify.Artifact) error {
	if m.registerPanic != nil {
		panic(m.registerPanic)
	}
	m.registerCalls = append(m.registerCalls, a)
	m.registerSlots = append(m.registerSlots, slot)
	return m.registerErr
}

func (m *mockForegroundHost) UnregisterForeground(_ int, removeIndicator bool) error {
	m.unregisterCalls = append(m.unregisterCalls, removeIndicator)
	return m.unregisterErr
}

func newTestController() (*Controller, *mockRenderer, *mockForegroundHost) {
	r := &mockRenderer{artifact: notify.Artifact{Title: "Tracking"}}
	h := &mockForegroundHost{}
	return NewController(r, h), r, h
}

func TestState_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		state State
		want  string
	}{
		"background": {state: Background, want: "background"},
		"foreground": {state: Foreground, want: "foreground"},
		"unknown":    {state: State(9), want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestNewController_StartsInBackground(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestController()

	assert.Equal(t, Background, c.State())
	assert.False(t, c.IsForeground())
}

func TestController_Enable(t *testing.T) {
	t.Parallel()
	c, r, h := newTestController()

	require.NoError(t, c.Enable())

	assert.Equal(t, Foreground, c.State())
	assert.Equal(t, 1, r.calls)
	require.Len(t, h.registerCalls, 1)
	assert.Equal(t, "Tracking", h.registerCalls[0].Title)
	assert.Equal(t, []int{notify.DefaultSlot}, h.registerSlots)
}

func TestController_EnableTwiceRegistersOnce(t *testing.T) {
	t.Parallel()
	c, r, h := newTestController()

	require.NoError(t, c.Enable())
	require.NoError(t, c.Enable())

	assert.Equal(t, 1, r.calls)
	assert.Len(t, h.registerCalls, 1)
	assert.True(t, c.IsForeground())
}

func TestController_EnableHostDenied(t *testing.T) {
	t.Parallel()
	c, _, h := newTestController()
	h.registerErr = apperrors.ErrPermissionDenied

	var err error
	assert.NotPanics(t, func() { err = c.Enable() })

	require.ErrorIs(t, err, apperrors.ErrForegroundRegistration)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, Background, c.State())
}

func TestController_EnableHostPanic(t *testing.T) {
	t.Parallel()
	c, _, h := newTestController()
	h.registerPanic = "boom"

	var err error
	assert.NotPanics(t, func() { err = c.Enable() })

	require.ErrorIs(t, err, apperrors.ErrForegroundRegistration)
	assert.Equal(t, Background, c.State())
}

func TestController_EnableRenderFailure(t *testing.T) {
	t.Parallel()
	c, r, h := newTestController()
	r.err = apperrors.ErrIconUnavailable

	err := c.Enable()

	require.ErrorIs(t, err, apperrors.ErrForegroundRegistration)
	assert.ErrorIs(t, err, apperrors.ErrIconUnavailable)
	assert.Empty(t, h.registerCalls)
	assert.Equal(t, Background, c.State())
}

func TestController_EnableNotRetriedAutomatically(t *testing.T) {
	t.Parallel()
	c, _, h := newTestController()
	h.registerErr = errMockHost

	require.Error(t, c.Enable())
	h.registerErr = nil

	assert.Len(t, h.registerCalls, 1)
	assert.Equal(t, Background, c.State())

	require.NoError(t, c.Enable())
	assert.Len(t, h.registerCalls, 2)
	assert.Equal(t, Foreground, c.State())
}

func TestController_DisableInBackgroundIsNoop(t *testing.T) {
	t.Parallel()
	c, _, h := newTestController()

	require.NoError(t, c.Disable())

	assert.Empty(t, h.unregisterCalls)
	assert.Equal(t, Background, c.State())
}

func TestController_DisableRemovesIndicator(t *testing.T) {
	t.Parallel()
	c, _, h := newTestController()
	require.NoError(t, c.Enable())

	require.NoError(t, c.Disable())

	assert.Equal(t, []bool{true}, h.unregisterCalls)
	assert.Equal(t, Background, c.State())

	require.NoError(t, c.Disable())
	assert.Len(t, h.unregisterCalls, 1)
}

func TestController_DisableErrorStillTransitions(t *testing.T) {
	t.Parallel()
	c, _, h := newTestController()
	require.NoError(t, c.Enable())
	h.unregisterErr = errMockHost

	err := c.Disable()

	require.ErrorIs(t, err, errMockHost)
	assert.Equal(t, Background, c.State())
}

func TestController_WithOptions(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	h := &mockForegroundHost{}
	c := NewController(&mockRenderer{}, h, WithSlot(9), WithLogger(zerolog.New(&logs)))

	require.NoError(t, c.Enable())

	assert.Equal(t, []int{9}, h.registerSlots)
	assert.Contains(t, logs.String(), "entered foreground mode")
	assert.Contains(t, logs.String(), `"slot":9`)
}

func TestController_WithPresenter(t *testing.T) {
	t.Parallel()
	host := notify.NoopHost{}
	p := notify.NewPresenter(host, notify.StaticIcons{notify.DefaultIconKey: 1}, nil)
	c := NewController(p, host)

	require.NoError(t, c.Enable())
	assert.True(t, c.IsForeground())
}
