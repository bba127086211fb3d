// Package logging builds the zerolog logger used by the keepalive CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Debug forces debug level
	Debug bool
	// Quiet forces warn level unless Debug is set
	Quiet bool

	// File enables a rotating JSON log file when non-empty
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// nopCloser is returned when no log file is open
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger writing to console and, when opts.File is set, to a
// rotating log file. The returned closer releases the log file.
//
// Console output format is determined by the terminal:
//   - TTY with colors enabled: console writer with timestamps
//   - non-TTY or NO_COLOR set: JSON lines
func New(opts Options, console io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := SelectLevel(opts.Level, opts.Debug, opts.Quiet)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	out := selectOutput(console)
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		fileWriter, err := newFileWriter(opts)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		out = zerolog.MultiLevelWriter(out, fileWriter)
		closer = fileWriter
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

// SelectLevel determines the log level from the configured name and flags.
func SelectLevel(name string, debug, quiet bool) (zerolog.Level, error) {
	switch {
	case debug:
		return zerolog.DebugLevel, nil
	case quiet:
		return zerolog.WarnLevel, nil
	case name == "":
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// selectOutput wraps console in a zerolog.ConsoleWriter on a colour TTY.
func selectOutput(console io.Writer) io.Writer {
	if f, ok := console.(*os.File); ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.Kitchen,
		}
	}
	return console
}

// newFileWriter creates a rotating file writer, creating its directory.
func newFileWriter(opts Options) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}, nil
}
