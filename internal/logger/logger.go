// Package logger builds zerolog loggers from configuration.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Config describes how log records are written.
type Config struct {
	Level      string `json:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Format     string `json:"format" yaml:"format" validate:"omitempty,oneof=json pretty"`
	TimeFormat string `json:"time_format" yaml:"timeFormat"`
}

// ParseLevel maps a level name to a zerolog level. Empty or unknown names
// yield info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// New returns a timestamped logger writing to w.
func New(cfg Config, w io.Writer) zerolog.Logger {
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	out := w
	if cfg.Format == FormatPretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat, NoColor: true}
	}

	return zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
