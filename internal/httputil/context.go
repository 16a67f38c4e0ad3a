package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	requestIDKey contextKey = "requestID"
)

// RequestIDHeader carries the correlation id between the console and the server
const RequestIDHeader = "X-Request-ID"

// WithRequestID adds the request id to the request context
func WithRequestID(r *http.Request, requestID string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, requestID)
	return r.WithContext(ctx)
}

// GetRequestID retrieves the request id from context, returns empty string if not found
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}
