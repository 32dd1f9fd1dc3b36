package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront-api/internal/models"
	"storefront-api/internal/services"

	"github.com/gorilla/mux"
)

// ProductsHandler handles the product catalog endpoints.
type ProductsHandler struct {
	service *services.StorefrontService
}

// NewProductsHandler creates a new products handler.
func NewProductsHandler(service *services.StorefrontService) *ProductsHandler {
	return &ProductsHandler{service: service}
}

// List handles GET /api/products
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.service.ListProducts())
}

// Create handles POST /api/products
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		slog.Warn("Invalid JSON in product create", "error", err, "remote_addr", r.RemoteAddr)
		writeErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON", nil)
		return
	}

	created, err := h.service.CreateProduct(p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, created)
}

// Update handles PUT /api/products/{id}
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var upd models.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		slog.Warn("Invalid JSON in product update", "error", err, "id", id)
		writeErrorResponse(w, http.StatusBadRequest, "bad_request", "Invalid JSON", nil)
		return
	}

	if _, err := h.service.UpdateProduct(id, upd); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}

// Delete handles DELETE /api/products/{id}
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteProduct(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.OKResponse{OK: true})
}
