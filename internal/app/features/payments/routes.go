// internal/app/features/payments/routes.go
package payments

import "github.com/go-chi/chi/v5"

// Routes mounts the payment endpoints (typically under "/api/money").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/List_All_Payment_Cases", h.HandleList)
	r.Post("/Payment_Details_By_ID", h.HandleDetails)
	r.Post("/Create_Task_For_Downloading_Payment_List", h.HandleDownloadTask)

	return r
}
