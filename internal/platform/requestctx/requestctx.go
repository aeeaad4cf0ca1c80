// Package requestctx carries per-request values between middleware and handlers.
package requestctx

import "context"

type key int

const (
	requestIDKey key = iota
	actorKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestID(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithActor records the username of the signed-in session serving the request.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey, username)
}

// Actor returns the session username, or "" outside a protected route.
func Actor(ctx context.Context) string {
	value, _ := ctx.Value(actorKey).(string)
	return value
}
