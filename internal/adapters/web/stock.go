package web

import (
	"net/http"
)

// stockRequest is the shared body of the three stock mutation endpoints.
type stockRequest struct {
	Quantity int64  `json:"quantity"`
	Comment  string `json:"comment"`
}

// addStock handles POST /api/items/{id}/stock/add.
func (h *Handler) addStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.AddStock(r.Context(), urlID(r), req.Quantity, req.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// consumeStock handles POST /api/items/{id}/stock/consume. Consuming more
// than the item holds returns 422 INSUFFICIENT_STOCK and writes nothing.
func (h *Handler) consumeStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.ConsumeStock(r.Context(), urlID(r), req.Quantity, req.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// adjustStock handles POST /api/items/{id}/stock/adjust with a signed delta.
func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta   int64  `json:"delta"`
		Comment string `json:"comment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.AdjustStock(r.Context(), urlID(r), req.Delta, req.Comment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
