// internal/app/features/commissions/routes.go
package commissions

import "github.com/go-chi/chi/v5"

// Routes mounts the commission endpoints (typically under "/api/commission").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/List_All_Commissions", h.HandleList)
	r.Post("/Commission_Details_By_ID", h.HandleDetails)
	r.Post("/Create_Task_For_Downloading_Commission_List", h.HandleDownloadTask)

	return r
}
