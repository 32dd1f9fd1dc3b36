package telemetry

import (
	"net/http"
	"time"
)

// Middleware wraps HTTP handlers to automatically collect request telemetry.
type Middleware struct {
	telemetry *StorefrontTelemetry
}

// NewMiddleware creates a telemetry middleware around the given instruments.
func NewMiddleware(telemetry *StorefrontTelemetry) *Middleware {
	return &Middleware{telemetry: telemetry}
}

// Handler returns the HTTP middleware function.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapper, r)

		metrics := RequestMetrics{
			Method:     r.Method,
			Endpoint:   GetEndpointFromPath(r.URL.Path),
			StatusCode: wrapper.statusCode,
			Duration:   time.Since(start),
		}

		ctx := r.Context()
		if wrapper.statusCode >= 400 {
			metrics.ErrorMessage = http.StatusText(wrapper.statusCode)
			m.telemetry.RegisterRequestError(ctx, metrics)
		} else {
			m.telemetry.RegisterRequestReceived(ctx, metrics)
		}
		m.telemetry.RegisterRequestDuration(ctx, metrics)
	})
}

// responseWriterWrapper captures the status code written by the handler.
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Flush lets the live-update stream flush through the wrapper.
func (w *responseWriterWrapper) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
