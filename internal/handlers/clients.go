package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront-api/internal/models"
	"storefront-api/internal/services"

	"github.com/gorilla/mux"
)

// ClientsHandler handles the client registry endpoints.
type ClientsHandler struct {
	service *services.StorefrontService
}

// NewClientsHandler creates a new clients handler.
func NewClientsHandler(service *services.StorefrontService) *ClientsHandler {
	return &ClientsHandler{service: service}
}

// List handles GET /api/clients
func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.service.ListClients())
}

// Create handles POST /api/clients
func (h *ClientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		slog.Warn("Invalid JSON in client create", "error", err, "remote_addr", r.RemoteAddr)
		writeErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON", nil)
		return
	}

	created, err := h.service.CreateClient(c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, created)
}

// Update handles PUT /api/clients/{id} and returns the updated client.
func (h *ClientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var upd models.ClientUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		slog.Warn("Invalid JSON in client update", "error", err, "id", id)
		writeErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON", nil)
		return
	}

	updated, err := h.service.UpdateClient(id, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/clients/{id}
func (h *ClientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteClient(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}
