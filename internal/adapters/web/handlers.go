// Package web is the HTTP adapter: a chi router over the
// ApplicationService with JWT cookie auth.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enjleezdev/theappez/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth (public) ─────────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 16)) // 64 KB is plenty for credentials
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/logout", h.logout)
	})

	// ── Protected API routes (401 JSON if unauthenticated) ───────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// Warehouses
		r.Get("/api/warehouses", h.listWarehouses)
		r.Post("/api/warehouses", h.createWarehouse)
		r.Get("/api/warehouses/{id}", h.getWarehouse)
		r.Put("/api/warehouses/{id}", h.updateWarehouse)
		r.Post("/api/warehouses/{id}/archive", h.archiveWarehouse)
		r.Post("/api/warehouses/{id}/restore", h.restoreWarehouse)
		r.Get("/api/warehouses/{id}/items", h.listItems)

		// Items
		r.Post("/api/items", h.createItem)
		r.Get("/api/items/{id}", h.getItem)
		r.Put("/api/items/{id}", h.updateItem)
		r.Post("/api/items/{id}/archive", h.archiveItem)
		r.Post("/api/items/{id}/restore", h.restoreItem)

		// Stock mutations
		r.Post("/api/items/{id}/stock/add", h.addStock)
		r.Post("/api/items/{id}/stock/consume", h.consumeStock)
		r.Post("/api/items/{id}/stock/adjust", h.adjustStock)

		// Reports
		r.Get("/api/reports/transactions", h.transactionReport)
		r.Get("/api/reports/transactions/export", h.exportTransactionReport)
		r.Post("/api/reports/print/item/{id}", h.printItemReport)
		r.Post("/api/reports/print/warehouse/{id}", h.printWarehouseReport)
		r.Post("/api/reports/print/transactions", h.printTransactionReport)

		// Archive
		r.Get("/api/reports/archive", h.listArchivedReports)
		r.Get("/api/reports/archive/{id}", h.reprintReport)

		// AI
		r.Post("/api/items/{id}/suggest", h.suggestStock)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlID extracts the {id} URL parameter.
func urlID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeJSON decodes the request body into v, writing the error response
// on failure: HTTP 413 when the body exceeds the RequestBodyLimit, 400 for
// all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
