package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Package-wide logger instance, configured once at startup.
var log zerolog.Logger

type ctxKey struct{}

// Init configures the global logger. Development environments get a pretty
// console writer; everything else logs JSON to stdout.
func Init(env string, logLevel string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if env == "development" || env == "dev" || env == "" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	var level zerolog.Level
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log = zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Get returns the global logger.
func Get() *zerolog.Logger {
	return &log
}

// WithContext returns the logger stored in ctx, or the global one.
func WithContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zerolog.Logger); ok {
		return l
	}
	return &log
}

// NewContext stores l in a child context.
func NewContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// WithRequestID returns a logger tagged with a request ID.
func WithRequestID(requestID string) zerolog.Logger {
	return log.With().Str("request_id", requestID).Logger()
}

// WithSession returns a logger tagged with a cart session ID.
func WithSession(sessionID string) zerolog.Logger {
	return log.With().Str("session_id", sessionID).Logger()
}

// --- Convenience Methods ---

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }
func Fatal() *zerolog.Event { return log.Fatal() }

// StoreOp logs a collection store read/write. Store failures are absorbed by
// the ledger, so this is the only place they become visible.
func StoreOp(op, key string, err error) {
	if err != nil {
		log.Error().Str("op", op).Str("key", key).Err(err).Msg("Collection store failure")
		return
	}
	log.Debug().Str("op", op).Str("key", key).Msg("Collection store")
}

// ServiceStart logs service startup.
func ServiceStart(name, port string) {
	log.Info().Str("service", name).Str("port", port).Msg("Service Started")
}
