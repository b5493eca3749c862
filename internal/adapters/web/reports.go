package web

import (
	"net/http"

	"github.com/enjleezdev/theappez/internal/core"
)

// filterFromQuery builds a ReportFilter from query parameters.
func filterFromQuery(r *http.Request) core.ReportFilter {
	q := r.URL.Query()
	return core.ReportFilter{
		WarehouseID: q.Get("warehouse_id"),
		ItemID:      q.Get("item_id"),
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
	}
}

// transactionReport handles GET /api/reports/transactions.
func (h *Handler) transactionReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GetTransactionReport(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSON(w, report)
}

// exportTransactionReport handles GET /api/reports/transactions/export and
// streams the report as an xlsx download.
func (h *Handler) exportTransactionReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ExportTransactionReport(r.Context(), filterFromQuery(r))
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	_, _ = result.Data.WriteTo(w)
}

// printItemReport handles POST /api/reports/print/item/{id}: snapshots the
// item's ledger into the archive.
func (h *Handler) printItemReport(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	report, err := h.svc.PrintItemReport(r.Context(), urlID(r), claims.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}

// printWarehouseReport handles POST /api/reports/print/warehouse/{id}.
func (h *Handler) printWarehouseReport(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	report, err := h.svc.PrintWarehouseReport(r.Context(), urlID(r), claims.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}

// printTransactionReport handles POST /api/reports/print/transactions with
// the filter in the body.
func (h *Handler) printTransactionReport(w http.ResponseWriter, r *http.Request) {
	var f core.ReportFilter
	if !decodeJSON(w, r, &f) {
		return
	}
	claims := authFromContext(r.Context())
	report, err := h.svc.PrintTransactionReport(r.Context(), f, claims.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}
