package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggingConfig controls how the root logger is built.
type LoggingConfig struct {
	// Level is the minimum level emitted (trace through panic).
	Level string

	// Format selects json output or a human console writer
	// ("console"/"pretty").
	Format string

	// Output is "stdout" or "stderr".
	Output string

	// AddSource attaches the caller file:line to each entry.
	AddSource bool

	// TimeFormat overrides the timestamp layout.
	TimeFormat string
}

// DefaultLoggingConfig returns json-to-stdout at info level.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:      "info",
		Format:     "json",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// NewLogger builds the root zerolog logger. The configured level is also
// installed globally so derived loggers inherit it.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	var out io.Writer = os.Stdout
	if strings.EqualFold(cfg.Output, "stderr") {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: zerolog.TimeFieldFormat}
	}

	lctx := zerolog.New(out).With().Timestamp()
	if cfg.AddSource {
		lctx = lctx.Caller()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)
	return lctx.Logger().Level(level)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithRequestContext derives a logger scoped to one HTTP request.
func WithRequestContext(logger zerolog.Logger, requestID, method, path string) zerolog.Logger {
	return logger.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Logger()
}

// WithArticleContext derives a logger carrying the article ID.
func WithArticleContext(logger zerolog.Logger, articleID string) zerolog.Logger {
	return logger.With().Str("article_id", articleID).Logger()
}

// WithCommentContext derives a logger carrying the comment ID.
func WithCommentContext(logger zerolog.Logger, commentID string) zerolog.Logger {
	return logger.With().Str("comment_id", commentID).Logger()
}

// WithEventContext derives a logger carrying lifecycle event identifiers.
func WithEventContext(logger zerolog.Logger, eventID, eventType string) zerolog.Logger {
	return logger.With().
		Str("event_id", eventID).
		Str("event_type", eventType).
		Logger()
}
