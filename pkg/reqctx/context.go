// Package reqctx carries request-scoped values through context.Context.
package reqctx

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

const (
	keyRequestID ctxKey = iota
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// RequestID returns the request ID, or "" if not set.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}
