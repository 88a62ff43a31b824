package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupEnvironment loads the .env file and configures zerolog output and
// level before anything else runs.
func setupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	production := os.Getenv("ENV") == "production"
	if production {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(strings.TrimSpace(os.Getenv("LOGLEVEL")))
	switch {
	case levelStr == "" && production:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case levelStr == "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		level, parseErr := zerolog.ParseLevel(levelStr)
		if parseErr != nil {
			level = zerolog.InfoLevel
			log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
		}
		zerolog.SetGlobalLevel(level)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found; proceeding with existing environment variables.")
	}
}
