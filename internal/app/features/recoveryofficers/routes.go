// internal/app/features/recoveryofficers/routes.go
package recoveryofficers

import "github.com/go-chi/chi/v5"

// Routes mounts the officer endpoints (typically under "/api/recovery_officer").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/Register_RO", h.HandleRegister)
	r.Post("/Approve_RO", h.HandleApprove)
	r.Post("/List_RO", h.HandleList)
	r.Post("/RO_Details_By_ID", h.HandleDetails)

	r.Post("/Suspend_RO", h.HandleSuspend)
	r.Post("/Terminate_RO", h.HandleTerminate)
	r.Post("/Update_RO_Details", h.HandleUpdate)

	r.Post("/Create_Task_For_Downloading_RO_List", h.HandleDownloadTask)

	return r
}
