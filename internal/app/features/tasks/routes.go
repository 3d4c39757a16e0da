// internal/app/features/tasks/routes.go
package tasks

import "github.com/go-chi/chi/v5"

// Routes mounts the task endpoints (typically under "/api/task").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/Create_Task", h.HandleCreate)
	r.Post("/List_All_Tasks", h.HandleList)

	return r
}
