package shared

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/keepalive/internal/config"
	apperrors "github.com/ariel-frischer/keepalive/internal/errors"
	"github.com/ariel-frischer/keepalive/internal/notify"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":           {err: nil, want: ExitSuccess},
		"exit error":    {err: NewExitError(7), want: 7},
		"wrapped exit":  {err: fmt.Errorf("ctx: %w", NewExitError(4)), want: 4},
		"argument":      {err: apperrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"configuration": {err: apperrors.NewConfigError("bad"), want: ExitConfigInvalid},
		"prerequisite":  {err: apperrors.NewPrerequisiteError("missing"), want: ExitMissingDependency},
		"runtime":       {err: apperrors.NewRuntimeError("failed"), want: ExitFailure},
		"plain":         {err: errors.New("plain"), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "exit code 3", NewExitError(3).Error())
}

func TestWriteFormatted(t *testing.T) {
	t.Parallel()

	v := struct {
		Title string `yaml:"title" json:"title"`
	}{Title: "Tracking"}

	tests := map[string]struct {
		format  string
		want    string
		wantErr bool
	}{
		"yaml":    {format: FormatYAML, want: "title: Tracking\n"},
		"default": {format: "", want: "title: Tracking\n"},
		"json":    {format: FormatJSON, want: "{\n  \"title\": \"Tracking\"\n}\n"},
		"unknown": {format: "xml", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := WriteFormatted(&buf, tt.format, v)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ExitInvalidArguments, ExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String(FlagConfig, DefaultConfigPath, "")
	cmd.Flags().Bool(FlagDebug, false, "")
	cmd.Flags().Bool(FlagQuiet, false, "")
	return cmd
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cmd := newFlagCommand()
	require.NoError(t, cmd.Flags().Set(FlagConfig, filepath.Join(t.TempDir(), "missing.json")))

	_, err := LoadConfig(cmd)

	require.Error(t, err)
	assert.Equal(t, ExitConfigInvalid, ExitCode(err))
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"notification": {"title": "Explicit"}}`), 0o644))

	cmd := newFlagCommand()
	require.NoError(t, cmd.Flags().Set(FlagConfig, path))

	cfg, err := LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "Explicit", cfg.Notification.Title)
}

func TestLoadConfig_DefaultPathMayBeMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(newFlagCommand())
	require.NoError(t, err)
	assert.Equal(t, notify.DefaultTitle, cfg.Notification.Title)
}

func TestNewHost(t *testing.T) {
	t.Parallel()

	host, err := NewHost(&config.Configuration{Host: config.HostSettings{Kind: "none"}}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, notify.NoopHost{}, host)

	_, err = NewHost(&config.Configuration{Host: config.HostSettings{Kind: "tray"}}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidHostKind)
	assert.Equal(t, ExitMissingDependency, ExitCode(err))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	cmd := newFlagCommand()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	require.NoError(t, cmd.Flags().Set(FlagQuiet, "true"))

	logger, closer, err := NewLogger(cmd, &config.Configuration{Log: config.LogSettings{Level: "debug"}})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("suppressed")
	logger.Warn().Msg("kept")

	assert.NotContains(t, stderr.String(), "suppressed")
	assert.Contains(t, stderr.String(), "kept")
}

func TestResolvers(t *testing.T) {
	t.Parallel()

	icons, launcher := Resolvers(&config.Configuration{
		Icons: map[string]int{"a": 3},
		App:   config.AppSettings{EntryPoint: "main"},
	})

	id, err := icons.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	entry, err := launcher.PrimaryEntryPoint()
	require.NoError(t, err)
	assert.Equal(t, "main", entry.Target)
}
