// internal/app/features/drcs/download.go
package drcs

import (
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
)

const opDownloadTask = "drc.download_task"

// HandleDownloadTask records a request to export the company list.
func (h *Handler) HandleDownloadTask(w http.ResponseWriter, r *http.Request) {
	var in downloadInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	p := tasks.Download(tasks.TemplateDRCList, map[string]any{"drc_status": in.DRCStatus}, in.CreatedBy)
	shared.SubmitTask(w, r, h.Log, h.Tasks, h.Audit, opDownloadTask, p)
}
