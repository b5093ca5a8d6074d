// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets the values, services read them:
//
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests pin time with requestcontext.WithTime.
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	subjectKey     struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeySubject     = subjectKey{}
)

// RequestID retrieves the correlation ID of the current request.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request correlation ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Subject retrieves the authenticated caller (JWT subject), if any.
func Subject(ctx context.Context) string {
	if sub, ok := ctx.Value(ContextKeySubject).(string); ok {
		return sub
	}
	return ""
}

// WithSubject injects the authenticated caller into the context.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ContextKeySubject, subject)
}

// Now returns the request time pinned in ctx, or the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request time. Used by middleware and tests.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
