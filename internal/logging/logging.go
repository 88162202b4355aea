// Package logging assembles the zerolog sink: a console writer plus an
// optional append-only file, with the minimum level taken from config.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"reelwatch/internal/config"
)

const timeFormat = "2006-01-02 15:04:05"

// New builds the process logger. The returned closer releases the log file
// (if one was opened) and is safe to call once at shutdown.
func New(cfg config.LoggingConfig) (zerolog.Logger, func(), error) {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat}}
	closer := func() {}

	if path := strings.TrimSpace(cfg.File); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log file %q: %w", path, err)
		}
		writers = append(writers, f)
		closer = func() { _ = f.Close() }
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(cfg.Level, zerolog.InfoLevel)).
		With().Timestamp().Logger()
	return logger, closer, nil
}

// ParseLevel maps a config level string to a zerolog level, falling back
// to def for anything unrecognized.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return def
	}
}
