// Package middleware provides HTTP middleware shared by the server's
// routes.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is a private type for context values set by this package.
type contextKey string

// traceIDKey is the context key under which the request trace id is
// stored.
const traceIDKey contextKey = "trace_id"

// Trace returns middleware that attaches a fresh trace id to each
// request's context and logs the request start. Apply it early so all
// downstream handlers see the id.
func Trace(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := uuid.NewString()
			ctx := context.WithValue(r.Context(), traceIDKey, traceID)

			logger.Debug("request started",
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TraceID retrieves the trace id from the context, or "" if the
// request did not pass through Trace.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}
