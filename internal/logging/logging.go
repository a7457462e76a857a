// Package logging provides a simple wrapper around slog to initialize
// the process logger from configuration.
//
// Log output goes to stderr: stdout belongs to the interactive UI and
// to machine-readable command output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	errInvalidLevel  = fmt.Errorf("invalid log level, must be one of: debug, info, warn, error")
	errInvalidFormat = fmt.Errorf("invalid log format, must be one of: text, json")
)

// Config defines the configuration for the logger.
type Config struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// levelFromString maps a config string to a slog level. An empty string
// defaults to info.
func levelFromString(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w, got %q", errInvalidLevel, level)
	}
}

// handlerFromString maps a config string to a handler constructor.
// An empty string defaults to the text handler.
func handlerFromString(format string) (func(io.Writer, *slog.HandlerOptions) slog.Handler, error) {
	switch format {
	case "text", "":
		return func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
			return slog.NewTextHandler(w, opts)
		}, nil
	case "json":
		return func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
			return slog.NewJSONHandler(w, opts)
		}, nil
	default:
		return nil, fmt.Errorf("%w, got %q", errInvalidFormat, format)
	}
}

// Initialize installs the configured logger as the slog default.
func (c Config) Initialize() error {
	return c.initialize(os.Stderr)
}

// initialize is the writer-injectable core of Initialize, split out for
// tests.
func (c Config) initialize(w io.Writer) error {
	level, err := levelFromString(c.Level)
	if err != nil {
		return err
	}

	newHandler, err := handlerFromString(c.Format)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: level}
	slog.SetDefault(slog.New(newHandler(w, opts)))
	return nil
}

// Validate checks the configuration without installing a logger.
func (c Config) Validate() error {
	if _, err := levelFromString(c.Level); err != nil {
		return err
	}
	if _, err := handlerFromString(c.Format); err != nil {
		return err
	}
	return nil
}
