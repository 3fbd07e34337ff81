// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gauravscripts/empdir/config"
)

// New creates a zerolog logger writing to w and installs it as the
// global zerolog/log logger.
func New(app string, cfg config.Log, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	switch cfg.Format {
	case config.FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	case config.FormatJSON, "":
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: unsupported", cfg.Format)
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", app).
		Logger()

	// Set the global logger used by the zerolog/log package for convenience.
	log.Logger = logger
	return logger, nil
}
