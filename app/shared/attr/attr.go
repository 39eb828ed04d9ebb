// Package attr provides slog attribute helpers shared across modules.
package attr

import (
	"context"
	"io"
	"log/slog"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

type contextKey string

// CorrelationIDKey carries a per-request correlation id through contexts.
const CorrelationIDKey contextKey = "correlation_id"

// NoOpLogger discards everything; used in tests.
var NoOpLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

func PlayerID(key string, id sharedtypes.PlayerID) slog.Attr {
	return slog.String(key, id.String())
}

func SessionID(key string, id sharedtypes.SessionID) slog.Attr {
	return slog.String(key, id.String())
}

func MatchID(key string, id sharedtypes.MatchID) slog.Attr {
	return slog.String(key, id.String())
}

// WithCorrelationID stores a correlation id on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// ExtractCorrelationID pulls the correlation id off the context for logging.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok && id != "" {
		return slog.String("correlation_id", id)
	}
	return slog.String("correlation_id", "unknown")
}
