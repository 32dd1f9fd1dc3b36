package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront-api/internal/models"
	"storefront-api/internal/services"
)

// RateHandler handles the currency rate endpoints.
type RateHandler struct {
	service *services.StorefrontService
}

// NewRateHandler creates a new rate handler.
func NewRateHandler(service *services.StorefrontService) *RateHandler {
	return &RateHandler{service: service}
}

// Get handles GET /api/rate
func (h *RateHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.RateResponse{Rate: h.service.GetRate()})
}

// Set handles PUT /api/rate. A body that is not a positive number is
// rejected with no mutation.
func (h *RateHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req models.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid rate payload", "error", err, "remote_addr", r.RemoteAddr)
		writeErrorResponse(w, http.StatusBadRequest, "validation_error", "Invalid rate", nil)
		return
	}

	rate, err := h.service.SetRate(req.Rate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.RateResponse{Rate: rate})
}
