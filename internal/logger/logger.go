// Package logger builds the zerolog logger used by the pigeon CLI.
//
// Two output formats are supported: human readable text (zerolog's
// ConsoleWriter) and one JSON object per line. Levels below the configured
// minimum are discarded.
//
// Example usage:
//
//	log, err := logger.New(logger.Options{Level: "debug", Format: "json"}, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	log.Info().Str("path", "/api/send/mail").Msg("sent")
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the log encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures New. Empty fields fall back to info level and text format.
type Options struct {
	Level  string
	Format string
}

// ParseLevel maps a level name to its zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return zerolog.DebugLevel, nil
	case LevelInfo, "":
		return zerolog.InfoLevel, nil
	case LevelWarn:
		return zerolog.WarnLevel, nil
	case LevelError:
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("invalid log level: %s (must be debug, info, warn or error)", s)
	}
}

// New creates a logger writing to w.
func New(opts Options, w io.Writer) (zerolog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	switch Format(strings.ToLower(strings.TrimSpace(opts.Format))) {
	case FormatJSON:
	case FormatText, "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", opts.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
