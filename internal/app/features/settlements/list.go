// internal/app/features/settlements/list.go
package settlements

import (
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	settlementstore "github.com/dalemusser/recoveryhub/internal/app/store/settlements"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
)

const (
	opList         = "settlement.list"
	opDetails      = "settlement.details"
	opDownloadTask = "settlement.download_task"
)

// HandleList returns one page of settlements. At least one filter is
// required and an empty result is a 404.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in listInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	b, err := in.builder()
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	policy := listquery.For("List_All_Settlement_Cases")
	if err := policy.CheckFilter(b); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opList)
	defer cancel()

	page := paging.Parse(in.Page)
	rows, total, err := settlementstore.New(h.DB).List(ctx, b, page)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	if err := policy.CheckEmpty(total); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	respond.List(w, "Settlement cases retrieved successfully", rows, paging.NewMeta(page, total))
}

// HandleDetails returns one settlement with its money transactions.
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	var in idInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opDetails)
	defer cancel()

	d, found, err := settlementstore.New(h.DB).Detail(ctx, in.SettlementID)
	if err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}
	if !found {
		respond.Error(w, h.Log, opDetails, apperr.NotFoundf("Settlement not found"))
		return
	}
	respond.OK(w, "Settlement details retrieved successfully", d)
}

// HandleDownloadTask records a request to export the settlement list.
func (h *Handler) HandleDownloadTask(w http.ResponseWriter, r *http.Request) {
	var in downloadInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	b, err := in.builder()
	if err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	if err := listquery.For("Create_Task_For_Downloading_Settlement_List").CheckFilter(b); err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	p := tasks.Download(tasks.TemplateSettlementList, in.params(), in.CreatedBy)
	shared.SubmitTask(w, r, h.Log, h.Tasks, h.Audit, opDownloadTask, p)
}
