package logger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Error creates an attribute for a single error under the key "error".
// Returns an empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component tags a log record with the emitting component's name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// UserID creates an attribute for a user identifier.
// Returns an empty Attr for the nil UUID.
func UserID(id uuid.UUID) slog.Attr {
	if id == uuid.Nil {
		return slog.Attr{}
	}
	return slog.String("user_id", id.String())
}
