package config

import (
	"io"

	"github.com/rs/zerolog"
)

// NewLogger creates logger writing JSON lines, or human friendly lines when pretty logging is enabled.
// Unknown level falls back to info.
func NewLogger(c Config, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	if c.Logging.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}
	level, err := zerolog.ParseLevel(c.Logging.Level)
	if err != nil || c.Logging.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
