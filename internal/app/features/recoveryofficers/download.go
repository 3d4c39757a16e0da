// internal/app/features/recoveryofficers/download.go
package recoveryofficers

import (
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
)

const opDownloadTask = "ro.download_task"

// HandleDownloadTask records a request to export the officer list.
func (h *Handler) HandleDownloadTask(w http.ResponseWriter, r *http.Request) {
	var in downloadInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	p := tasks.Download(tasks.TemplateROList, map[string]any{
		"drc_id":         in.DRCID,
		"drcUser_type":   in.DrcUserType,
		"drcUser_status": in.DrcUserStatus,
	}, in.CreatedBy)
	shared.SubmitTask(w, r, h.Log, h.Tasks, h.Audit, opDownloadTask, p)
}
