// internal/app/features/auditlog/routes.go
package auditlog

import "github.com/go-chi/chi/v5"

// Routes mounts the audit endpoints (typically under "/api/audit").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/List_Audit_Events", h.HandleList)
	r.Post("/Entity_History", h.HandleHistory)

	return r
}
