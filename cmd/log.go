package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// newLogger returns a logger at the configured level, or debug with --verbose.
func newLogger(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg != nil && cfg.LogLevel != "" {
		if l, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
			level = l
		}
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// consoleLogger writes human-readable diagnostics to stderr.
func consoleLogger() zerolog.Logger {
	return newLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}

// fileLogger appends JSON diagnostics to the configured log file so they do
// not draw over the full-screen view.
func fileLogger() (zerolog.Logger, io.Closer, error) {
	path := cfg.LogPath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return newLogger(f), f, nil
}
