package middleware

import (
	"log/slog"
	"net/http"
)

// Recover turns a handler panic into a JSON 500 instead of killing the
// process. The per-request failure policy is: report, never terminate.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Unhandled panic in handler",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path)
				writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
