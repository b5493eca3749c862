package web

import (
	"net/http"

	"github.com/enjleezdev/theappez/internal/app"
)

// listWarehouses handles GET /api/warehouses?include_archived=true.
func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	result, err := h.svc.ListWarehouses(r.Context(), includeArchived)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createWarehouse handles POST /api/warehouses.
func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	claims := authFromContext(r.Context())
	result, err := h.svc.CreateWarehouse(r.Context(), app.CreateWarehouseRequest{
		OwnerID:     claims.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSON(w, result)
}

// getWarehouse handles GET /api/warehouses/{id}.
func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetWarehouse(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateWarehouse handles PUT /api/warehouses/{id}.
func (h *Handler) updateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.UpdateWarehouse(r.Context(), urlID(r), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// archiveWarehouse handles POST /api/warehouses/{id}/archive. Archiving
// cascades to the warehouse's items.
func (h *Handler) archiveWarehouse(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ArchiveWarehouse(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// restoreWarehouse handles POST /api/warehouses/{id}/restore.
func (h *Handler) restoreWarehouse(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RestoreWarehouse(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
