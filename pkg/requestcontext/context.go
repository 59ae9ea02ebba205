// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets values, services read them. Keeping this package free of
// net/http lets services consume caller identity and the request clock
// without pulling transport code in.
//
// Usage in services (read values):
//
//	caller := requestcontext.CallerID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithCallerID(ctx, callerID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "penledger/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	callerIDKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// CallerID retrieves the already-authenticated caller from the context.
// Returns the zero value if not set.
func CallerID(ctx context.Context) id.AccountID {
	if caller, ok := ctx.Value(callerIDKey{}).(id.AccountID); ok {
		return caller
	}
	return id.AccountID{}
}

// WithCallerID injects a caller id into the context.
func WithCallerID(ctx context.Context, caller id.AccountID) context.Context {
	return context.WithValue(ctx, callerIDKey{}, caller)
}

// RequestID retrieves the request correlation id, empty if not set.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// WithRequestID injects a request correlation id into the context.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// Now returns the request time if one was injected, otherwise time.Now().
// Services use this instead of time.Now() so tests can fix the clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed request time into the context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
