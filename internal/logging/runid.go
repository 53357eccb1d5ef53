package logging

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type contextKey int

const runIDKey contextKey = iota

// NewRunID returns a fresh ULID identifying one launcher invocation.
// Every log event of a run carries it, which keeps interleaved plugin
// output attributable when logging to a shared file.
func NewRunID() string {
	return ulid.Make().String()
}

// ContextWithRunID attaches a run ID to ctx.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run ID attached to ctx, generating one
// when the context carries none.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok && id != "" {
		return id
	}
	return NewRunID()
}
