package notify

// IconResolver maps a logical icon key to a renderable icon id.
// Unknown keys resolve to 0 rather than an error.
type IconResolver interface {
	Resolve(key string) (int, error)
}

// LaunchResolver finds the application's primary entry point.
// A nil EntryPoint with a nil error means the application has none.
type LaunchResolver interface {
	PrimaryEntryPoint() (*EntryPoint, error)
}

// StaticIcons resolves icon keys from a fixed table
type StaticIcons map[string]int

// Resolve returns the id for key, or 0 when the key is unknown
func (s StaticIcons) Resolve(key string) (int, error) {
	return s[key], nil
}

// StaticLauncher resolves a fixed entry point target.
// An empty Target means the application has no launchable entry point.
type StaticLauncher struct {
	Target string
}

// PrimaryEntryPoint returns the configured entry point, or nil
func (l StaticLauncher) PrimaryEntryPoint() (*EntryPoint, error) {
	if l.Target == "" {
		return nil, nil
	}
	return &EntryPoint{Target: l.Target}, nil
}
