package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger used across the service.
func Init() {
	// Human-readable, colorized output; the API is meant to run alongside
	// a local SPA during development.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Include the caller's file and line number
	log.Logger = log.With().Caller().Logger()
}
