// internal/app/features/tasks/list.go
package tasks

import (
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	taskstore "github.com/dalemusser/recoveryhub/internal/app/store/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
)

const opList = "task.list"

type listInput struct {
	TaskStatus     string `json:"task_status" validate:"max=50" label:"Task status"`
	TemplateTaskID *int64 `json:"Template_Task_Id" validate:"omitempty,gt=0" label:"Template task id"`
	CreatedBy      string `json:"Created_By" validate:"max=100" label:"Created by"`
	Page           any    `json:"page"`
}

// HandleList returns one page of tasks, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in listInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	b := &listquery.Builder{}
	b.Eq("task_status", in.TaskStatus).
		EqInt("Template_Task_Id", in.TemplateTaskID).
		Eq("Created_By", in.CreatedBy)
	policy := listquery.For("List_All_Tasks")
	if err := policy.CheckFilter(b); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opList)
	defer cancel()

	page := paging.Parse(in.Page)
	rows, total, err := taskstore.New(h.DB).List(ctx, b, page)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	if err := policy.CheckEmpty(total); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	respond.List(w, "Tasks retrieved successfully", rows, paging.NewMeta(page, total))
}
