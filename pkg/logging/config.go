package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/polarmerge/polarmerge/pkg/constants"
)

// Config holds logger configuration, typically assembled by the CLI from
// flags and environment variables.
type Config struct {
	// Level is the minimum level to emit (trace, debug, info, warn, error,
	// fatal, off).
	Level string

	// Format selects the output encoding: json, console, or auto, which
	// picks console on a terminal and json otherwise.
	Format string

	// Output is the destination: stderr, stdout, discard, or a file path.
	Output string

	// TimeFormat names the timestamp layout for console output (kitchen,
	// rfc3339, stamp, or a literal Go layout string).
	TimeFormat string

	// NoColor disables ANSI colors in console output.
	NoColor bool

	// AddCaller annotates events with file:line. Debug level always does.
	AddCaller bool

	// Fields are constant fields stamped onto every event, e.g. a run ID.
	Fields map[string]any
}

// DefaultConfig returns the configuration commands start from.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// Configure rebuilds the default logger from cfg.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// ConfigureFromEnv rebuilds the default logger from LOG_* environment
// variables, for callers embedding the pipeline without a CLI in front.
func ConfigureFromEnv() {
	Configure(&Config{
		Level:      envOr("LOG_LEVEL", "info"),
		Format:     envOr("LOG_FORMAT", "auto"),
		Output:     envOr("LOG_OUTPUT", "stderr"),
		TimeFormat: envOr("LOG_TIME_FORMAT", "kitchen"),
		NoColor:    os.Getenv("NO_COLOR") != "",
		AddCaller:  os.Getenv("LOG_CALLER") == "true",
		Fields:     parseFields(os.Getenv("LOG_FIELDS")),
	})
}

// NewLoggerFromConfig builds a logger from cfg without installing it.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(resolveWriter(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	if len(cfg.Fields) > 0 {
		lctx := logger.With()
		for k, v := range cfg.Fields {
			lctx = addField(lctx, k, v)
		}
		logger = lctx.Logger()
	}

	return logger
}

// resolveWriter turns the Output and Format settings into a writer.
func resolveWriter(cfg *Config) io.Writer {
	var out io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "discard", "none":
		out = io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			out = os.Stderr
		} else {
			out = f
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "console"
		} else {
			format = "json"
		}
	}

	switch format {
	case "console", "pretty":
		return consoleWriter(out, parseTimeFormat(cfg.TimeFormat), cfg.NoColor)
	default:
		return out
	}
}

// parseLevel maps a level name to a zerolog level, accepting a few aliases
// zerolog's parser does not.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "", "info":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "off", "none", "disabled":
		return zerolog.Disabled
	}
	if level, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil {
		return level
	}
	return zerolog.InfoLevel
}

// parseTimeFormat maps a timestamp layout name to a Go layout string.
// Unrecognized values that look like literal layouts pass through.
func parseTimeFormat(name string) string {
	switch strings.ToLower(name) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "unix", "epoch":
		return ""
	case "stamp":
		return time.Stamp
	case "stampmilli":
		return time.StampMilli
	}
	if strings.Contains(name, "2006") || strings.Contains(name, "15:04") {
		return name
	}
	return time.Kitchen
}

// parseFields parses LOG_FIELDS, a comma-separated list of key=value pairs.
func parseFields(s string) map[string]any {
	fields := make(map[string]any)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return fields
}

// addField appends one typed field to a logger context. Shared by the
// config Fields block and the context helpers.
func addField(lctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return lctx.Str(key, v)
	case int:
		return lctx.Int(key, v)
	case int64:
		return lctx.Int64(key, v)
	case float64:
		return lctx.Float64(key, v)
	case bool:
		return lctx.Bool(key, v)
	case time.Time:
		return lctx.Time(key, v)
	case error:
		return lctx.AnErr(key, v)
	default:
		return lctx.Interface(key, v)
	}
}

// envOr returns the environment variable's value, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
