// internal/app/features/rtoms/routes.go
package rtoms

import "github.com/go-chi/chi/v5"

// Routes mounts the RTOM endpoints (typically under "/api/RTOM").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/Register_RTOM", h.HandleRegister)
	r.Post("/List_All_RTOMs", h.HandleList)
	r.Post("/RTOM_Details_By_ID", h.HandleDetails)
	r.Post("/List_ROs_By_RTOM", h.HandleListOfficers)

	r.Post("/Update_RTOM_Details", h.HandleUpdate)
	r.Post("/Suspend_RTOM", h.HandleSuspend)
	r.Post("/Terminate_RTOM", h.HandleTerminate)

	return r
}
