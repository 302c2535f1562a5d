// Package logging is the structured logging layer for polarmerge, built on
// zerolog. Pipeline stages emit structured events — mode, input, row counts —
// that render as human-readable console lines on a terminal and as JSON when
// output is redirected or collected by batch infrastructure.
//
// The package keeps one process-wide default logger, configured once at
// startup. Stages that want scoped fields derive child loggers through the
// context helpers:
//
//	ctx = logging.WithMode(ctx, "pos")
//	ctx = logging.WithInput(ctx, "intensity")
//	logging.Ctx(ctx).Info().Int("rows", n).Msg("merged intensity table")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the process-wide logger. Commands reconfigure it once at
// startup, before any pipeline work, so no locking is needed.
var defaultLogger zerolog.Logger

func init() {
	level := envLevel()
	zerolog.SetGlobalLevel(level)

	var w io.Writer = os.Stderr
	if stderrIsTerminal() && os.Getenv("LOG_FORMAT") != "json" {
		w = consoleWriter(os.Stderr, time.Kitchen, os.Getenv("NO_COLOR") != "")
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	defaultLogger = logger
}

// Default returns the process-wide default logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide default logger. zerolog's own global
// logger is kept in step so anything logging through zerolog/log lands in
// the same stream.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New returns a JSON logger writing to w at the current global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger writing to stderr.
func NewConsole() zerolog.Logger {
	return New(consoleWriter(os.Stderr, time.Kitchen, os.Getenv("NO_COLOR") != ""))
}

// With opens a child-logger context on the default logger.
func With() zerolog.Context {
	return defaultLogger.With()
}

// Debug starts a debug-level event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info-level event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn-level event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error-level event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal starts a fatal-level event on the default logger; the process exits
// after the event is written.
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

// Err starts an event whose level depends on err: error-level when non-nil,
// info-level otherwise.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}

// consoleWriter builds the zerolog console writer all pretty output goes
// through.
func consoleWriter(out io.Writer, timeFormat string, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeFormat,
		NoColor:    noColor,
	}
}

// stderrIsTerminal reports whether stderr is attached to a terminal.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// envLevel reads the startup log level from LOG_LEVEL, with DEBUG=1 as a
// shortcut, defaulting to info.
func envLevel() zerolog.Level {
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if level, err := zerolog.ParseLevel(s); err == nil {
			return level
		}
		return zerolog.InfoLevel
	}
	if os.Getenv("DEBUG") != "" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
