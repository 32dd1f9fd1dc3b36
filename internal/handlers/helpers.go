package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront-api/internal/models"
	"storefront-api/internal/services"
)

// writeJSONResponse is a helper function to write JSON responses
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeErrorResponse is a helper function to write error responses
func writeErrorResponse(w http.ResponseWriter, statusCode int, code, message string, details []models.ErrorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// writeServiceError maps service sentinel errors to HTTP statuses. Anything
// unrecognized is a store failure and reports as a server error.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeErrorResponse(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, services.ErrDuplicateNationalID):
		writeErrorResponse(w, http.StatusBadRequest, "conflict", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidRecord), errors.Is(err, services.ErrInvalidRate):
		writeErrorResponse(w, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	}
}

// NotFoundHandler answers unmatched routes with a JSON error body.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusNotFound, "not_found", "Endpoint not found", nil)
	})
}

// MethodNotAllowedHandler answers requests that match a route path with an
// unsupported method, keeping the error body shape uniform.
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})
}
