package notify

import (
	"errors"
	"sync"
)

// MockHost is a call-recording Host for testing.
// Errors and panics can be configured per method.
type MockHost struct {
	mu sync.Mutex

	// Configuration
	UpsertError     error
	ShowError       error
	RegisterError   error
	UnregisterError error
	ShowPanic       any

	// Call tracking
	Categories       []Category
	ShowCalls        []Artifact
	ShowSlots        []int
	WithdrawCalls    []int
	RegisterCalls    []Artifact
	UnregisterCalls  []bool
	LastShowSlot     int
	LastRegisterSlot int
}

// NewMockHost creates a mock host that accepts every call
func NewMockHost() *MockHost {
	return &MockHost{}
}

func (m *MockHost) UpsertCategory(c Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Categories = append(m.Categories, c)
	return m.UpsertError
}

func (m *MockHost) Show(slot int, a Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShowPanic != nil {
		panic(m.ShowPanic)
	}
	m.ShowCalls = append(m.ShowCalls, a)
	m.ShowSlots = append(m.ShowSlots, slot)
	m.LastShowSlot = slot
	return m.ShowError
}

func (m *MockHost) Withdraw(slot int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WithdrawCalls = append(m.WithdrawCalls, slot)
	return nil
}

func (m *MockHost) RegisterForeground(slot int, a Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls = append(m.RegisterCalls, a)
	m.LastRegisterSlot = slot
	return m.RegisterError
}

func (m *MockHost) UnregisterForeground(_ int, removeIndicator bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnregisterCalls = append(m.UnregisterCalls, removeIndicator)
	return m.UnregisterError
}

// MockIcons resolves icons from a table and can fail specific keys
type MockIcons struct {
	IDs    map[string]int
	Errors map[string]error
	Calls  []string
}

func (m *MockIcons) Resolve(key string) (int, error) {
	m.Calls = append(m.Calls, key)
	if err, ok := m.Errors[key]; ok {
		return 0, err
	}
	return m.IDs[key], nil
}

// MockLauncher returns a fixed entry point or error
type MockLauncher struct {
	Entry *EntryPoint
	Err   error
	Calls int
}

func (m *MockLauncher) PrimaryEntryPoint() (*EntryPoint, error) {
	m.Calls++
	return m.Entry, m.Err
}

// mockSender is a visualSender for DesktopHost tests
type mockSender struct {
	available bool
	err       error
	calls     []Artifact
	slots     []int
}

func (m *mockSender) SendVisual(slot int, a Artifact, _ Category) error {
	m.calls = append(m.calls, a)
	m.slots = append(m.slots, slot)
	return m.err
}

func (m *mockSender) VisualAvailable() bool { return m.available }

// Common test errors
var (
	ErrMockHost   = errors.New("mock host error")
	ErrMockLookup = errors.New("mock lookup error")
)
