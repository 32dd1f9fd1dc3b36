package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront-api/internal/store"
)

// BackupsHandler exposes snapshot administration. Restore trusts the named
// snapshot verbatim, so these routes sit behind the admin key middleware.
type BackupsHandler struct {
	backups *store.BackupManager
}

// NewBackupsHandler creates a new backups handler.
func NewBackupsHandler(backups *store.BackupManager) *BackupsHandler {
	return &BackupsHandler{backups: backups}
}

type snapshotResponse struct {
	File string `json:"file"`
}

type restoreRequest struct {
	File string `json:"file"`
}

// List handles GET /api/admin/backups
func (h *BackupsHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.backups.List()
	if err != nil {
		slog.Error("Failed to list backups", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		return
	}
	writeJSONResponse(w, http.StatusOK, names)
}

// Create handles POST /api/admin/backups
func (h *BackupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	file, err := h.backups.Snapshot("manual")
	if err != nil {
		slog.Error("Failed to create backup", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		return
	}
	writeJSONResponse(w, http.StatusCreated, snapshotResponse{File: file})
}

// Restore handles POST /api/admin/backups/restore
func (h *BackupsHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.File == "" {
		writeErrorResponse(w, http.StatusBadRequest, "bad_request", "Backup file name required", nil)
		return
	}

	if err := h.backups.Restore(req.File); err != nil {
		slog.Error("Failed to restore backup", "file", req.File, "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		return
	}
	writeJSONResponse(w, http.StatusOK, snapshotResponse{File: req.File})
}
