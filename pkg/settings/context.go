package settings

import (
	"context"
)

type contextKey string

const settingsContextKey contextKey = "prun.run"

// IntoContext attaches the per-run options to ctx.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, settingsContextKey, s)
}

// FromContext returns the per-run options stored by IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(settingsContextKey).(*Run)
	return s, ok
}
