// Package middleware provides the HTTP middleware stack.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey keeps our context values from colliding with other packages'.
type contextKey string

const (
	// RequestIDKey carries the per-request correlation ID.
	RequestIDKey contextKey = "request_id"
	// TraceIDKey carries a caller-supplied trace ID, when one arrived.
	TraceIDKey contextKey = "trace_id"
)

// RequestIDHeader names the request ID header on both request and response.
const RequestIDHeader = "X-Request-ID"

// TraceIDHeader names the propagated trace ID header.
const TraceIDHeader = "X-Trace-ID"

// RequestID tags every request with a correlation ID, honoring an incoming
// X-Request-ID so IDs survive proxies, and echoes it on the response. An
// X-Trace-ID header is propagated untouched when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)

		if traceID := r.Header.Get(TraceIDHeader); traceID != "" {
			ctx = context.WithValue(ctx, TraceIDKey, traceID)
			w.Header().Set(TraceIDHeader, traceID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request's correlation ID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// GetTraceID returns the propagated trace ID, or "".
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}
