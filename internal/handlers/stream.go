package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"storefront-api/internal/stream"
)

// StreamHandler serves the live-update channel as server-sent events.
type StreamHandler struct {
	notifier *stream.Notifier
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(notifier *stream.Notifier) *StreamHandler {
	return &StreamHandler{notifier: notifier}
}

// Stream handles GET /api/stream. The connection stays open until the client
// disconnects; every broadcast arrives as one SSE event named after the
// changed collection.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		slog.Error("Response writer does not support streaming")
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "Streaming unsupported", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	id, events := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(id)

	// An initial blank line confirms the stream to the client.
	fmt.Fprint(w, "\n")
	flusher.Flush()

	slog.Info("Stream listener connected", "listener_id", id, "remote_addr", r.RemoteAddr)

	for {
		select {
		case topic, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: update\n\n", topic)
			flusher.Flush()
		case <-r.Context().Done():
			slog.Info("Stream listener disconnected", "listener_id", id)
			return
		}
	}
}
