// Package logging builds the zerolog loggers used across rmenu and
// carries them through context. Console output is for humans on a TTY;
// everything else gets JSON lines.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Format values accepted by Config.Format.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Unparseable values fall back to info.
	Level string
	// Format is auto, console, or json. Auto picks console when stderr
	// is a terminal.
	Format string
	// File, when set, receives a JSON copy of every event in addition
	// to stderr.
	File string
}

// Result carries the constructed logger plus the state needed to tear it
// down again.
type Result struct {
	Logger zerolog.Logger
	// FilePath is the log file actually opened, empty when logging to
	// stderr only.
	FilePath string
	// FallbackReason explains why a requested log file was not used.
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *Result) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger per cfg. A requested log file that cannot be
// opened degrades to stderr-only logging, recorded in FallbackReason.
func New(cfg Config) *Result {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writers := []io.Writer{stderrWriter(cfg.Format)}
	result := &Result{}

	if cfg.File != "" {
		if dirErr := os.MkdirAll(filepath.Dir(cfg.File), 0o750); dirErr != nil {
			result.FallbackReason = dirErr.Error()
		} else if file, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); openErr != nil {
			result.FallbackReason = openErr.Error()
		} else {
			result.file = file
			result.FilePath = cfg.File
			writers = append(writers, file)
		}
	}

	result.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return result
}

// stderrWriter picks the stderr representation for the requested format.
func stderrWriter(format string) io.Writer {
	console := format == FormatConsole ||
		(format != FormatJSON && term.IsTerminal(int(os.Stderr.Fd())))
	if console {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}
	return os.Stderr
}

// FromContext returns the logger stored in ctx, or a disabled logger
// when none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// ComponentLogger returns logger tagged with a component field, the
// per-subsystem convention used across rmenu.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}
