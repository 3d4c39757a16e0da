// internal/app/features/settlements/routes.go
package settlements

import "github.com/go-chi/chi/v5"

// Routes mounts the settlement endpoints (typically under "/api/settlement").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/List_All_Settlement_Cases", h.HandleList)
	r.Post("/Settlement_Details_By_ID", h.HandleDetails)
	r.Post("/Create_Task_For_Downloading_Settlement_List", h.HandleDownloadTask)

	return r
}
