// Package logging builds the process-wide zerolog.Logger and the small
// helpers components use to derive scoped loggers from it, matching the
// teacher's `log := parent.With().Str("component", "x").Logger()` idiom
// (see pkg/connector/client.go and the AddLogContext pattern in
// pkg/connector/remote_message.go).
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the base logger. Pretty console output in development,
// structured JSON in production — selected by env, not by a build tag.
func New(env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var w = os.Stderr
	if strings.EqualFold(env, "development") || strings.EqualFold(env, "local") {
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
		return zerolog.New(cw).With().Timestamp().Logger()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Component derives a scoped child logger, the shape every component in
// this gateway stores on its struct.
func Component(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}
