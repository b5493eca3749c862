package web

import (
	"net/http"
)

// listArchivedReports handles GET /api/reports/archive.
func (h *Handler) listArchivedReports(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListArchivedReports(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// reprintReport handles GET /api/reports/archive/{id}: reconstructs the
// stored view purely from the snapshot.
func (h *Handler) reprintReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ReprintReport(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
