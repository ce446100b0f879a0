// Package logging builds the zerolog logger the rest of the gateway
// receives by injection. Nothing outside this package touches the
// zerolog globals, so tests can hand components a logger writing to
// a buffer instead.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns the process logger. LOG_LEVEL selects the level
// (debug, info, warn, error; default info) and LOG_PRETTY=true
// switches to the human-readable console writer for local runs.
func New() zerolog.Logger {
	level := zerolog.InfoLevel
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	var out = zerolog.New(os.Stderr)
	if os.Getenv("LOG_PRETTY") == "true" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return out.Level(level).With().Timestamp().Logger()
}
