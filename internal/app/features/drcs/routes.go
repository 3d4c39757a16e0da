// internal/app/features/drcs/routes.go
package drcs

import "github.com/go-chi/chi/v5"

// Routes mounts the DRC endpoints (typically under "/api/DRC").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/Register_DRC", h.HandleRegister)
	r.Post("/List_All_Active_DRC", h.HandleListActive)
	r.Get("/List_All_Active_DRC", h.HandleListActive)
	r.Post("/List_DRCs", h.HandleList)
	r.Post("/Get_DRC_Details", h.HandleDetails)

	r.Post("/Change_DRC_Status", h.HandleChangeStatus)
	r.Post("/Terminate_DRC", h.HandleTerminate)
	r.Post("/Update_DRC_Details", h.HandleUpdate)

	r.Post("/Create_Task_For_Downloading_DRC_List", h.HandleDownloadTask)

	return r
}
