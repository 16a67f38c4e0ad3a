package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"docmanagement/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response. Aborted
// handlers (http.ErrAbortHandler) are re-panicked for net/http to handle.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger.ErrorContext(r.Context(), "handler panicked",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", httputil.GetRequestID(r.Context()),
					"stack", string(debug.Stack()),
				)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
