package middleware

import (
	"net/http"

	"docmanagement/internal/httputil"

	"github.com/google/uuid"
)

// RequestID reuses the caller's X-Request-ID or mints a new one, stores it in
// the request context and echoes it on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(httputil.RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}

			w.Header().Set(httputil.RequestIDHeader, requestID)
			next.ServeHTTP(w, httputil.WithRequestID(r, requestID))
		})
	}
}
