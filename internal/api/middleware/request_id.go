package middleware

import (
	"context"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey int

const RequestIDKey ctxKey = iota

// RequestIDHeader echoes the request id back to the client.
const RequestIDHeader = "X-Request-Id"

// RequestID copies chi's request id into our context and the response headers.
// Must run after chi's RequestID middleware.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := chimw.GetReqID(r.Context())
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), RequestIDKey, requestID)))
	})
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// LogAttrs returns the request-scoped attributes every log line of a request
// should carry: the request id and, behind Identity, the caller.
func LogAttrs(ctx context.Context) []slog.Attr {
	attrs := []slog.Attr{slog.String("request_id", GetRequestID(ctx))}
	if userID := UserIDFrom(ctx); userID != uuid.Nil {
		attrs = append(attrs, slog.String("user_id", userID.String()))
	}
	return attrs
}
