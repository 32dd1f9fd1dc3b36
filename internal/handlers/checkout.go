package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront-api/internal/models"
	"storefront-api/internal/services"
)

// CheckoutHandler handles transaction submission and history.
type CheckoutHandler struct {
	service *services.StorefrontService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service *services.StorefrontService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		slog.Warn("Invalid JSON in checkout", "error", err, "remote_addr", r.RemoteAddr)
		writeErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON", nil)
		return
	}

	created, err := h.service.Checkout(t)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, created)
}

// History handles GET /api/history
func (h *CheckoutHandler) History(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.service.ListTransactions())
}
