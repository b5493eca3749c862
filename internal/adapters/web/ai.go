package web

import (
	"net/http"
)

// suggestStock handles POST /api/items/{id}/suggest: asks the AI agent for
// a stock level recommendation based on the item's ledger.
func (h *Handler) suggestStock(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SuggestStock(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
