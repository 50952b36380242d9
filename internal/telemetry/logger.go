// Package telemetry carries the ambient logging and metrics used by the engine
// and the command line.
package telemetry

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/funvibe/chainlang/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// NewLogger builds a zerolog logger from the log section of the configuration.
// The returned closer releases a log file; it does nothing for the standard
// streams.
func NewLogger(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	var writer io.Writer
	closer := io.Closer(nopCloser{})
	switch cfg.Output {
	case "", "stderr":
		writer = os.Stderr
	case "stdout":
		writer = os.Stdout
	default:
		// If it's not stdout/stderr, assume it's a file path
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		writer, closer = file, file
	}
	return NewLoggerTo(writer, cfg), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLoggerTo builds a logger writing to w. Console output is coloured only
// when w is a terminal.
func NewLoggerTo(w io.Writer, cfg config.LogConfig) zerolog.Logger {
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !IsTerminal(w)}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(cfg.Level))
}

// ParseLevel maps a configured level name to a zerolog level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a child logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
