package web

import (
	"net/http"

	"github.com/enjleezdev/theappez/internal/app"
)

// listItems handles GET /api/warehouses/{id}/items?include_archived=true.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	result, err := h.svc.ListItems(r.Context(), urlID(r), includeArchived)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createItem handles POST /api/items.
func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WarehouseID     string `json:"warehouse_id"`
		Name            string `json:"name"`
		Location        string `json:"location"`
		InitialQuantity int64  `json:"initial_quantity"`
		Comment         string `json:"comment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	claims := authFromContext(r.Context())
	result, err := h.svc.CreateItem(r.Context(), app.CreateItemRequest{
		WarehouseID:     req.WarehouseID,
		OwnerID:         claims.UserID,
		Name:            req.Name,
		Location:        req.Location,
		InitialQuantity: req.InitialQuantity,
		Comment:         req.Comment,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getItem handles GET /api/items/{id}.
func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetItem(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateItem handles PUT /api/items/{id}.
func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.UpdateItem(r.Context(), urlID(r), req.Name, req.Location)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// archiveItem handles POST /api/items/{id}/archive.
func (h *Handler) archiveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ArchiveItem(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// restoreItem handles POST /api/items/{id}/restore.
func (h *Handler) restoreItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RestoreItem(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
