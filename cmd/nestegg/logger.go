package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// zerologLogger implements calculation.Logger on top of zerolog
type zerologLogger struct {
	log zerolog.Logger
}

// newLogger writes human-readable logs to w. Only warnings and errors are
// shown unless debug is set.
func newLogger(w io.Writer, debug bool) zerologLogger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	return zerologLogger{log: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

func (l zerologLogger) Debugf(format string, args ...any) { l.log.Debug().Msgf(format, args...) }
func (l zerologLogger) Infof(format string, args ...any)  { l.log.Info().Msgf(format, args...) }
func (l zerologLogger) Warnf(format string, args ...any)  { l.log.Warn().Msgf(format, args...) }
func (l zerologLogger) Errorf(format string, args ...any) { l.log.Error().Msgf(format, args...) }
