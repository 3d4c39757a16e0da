// internal/app/features/commissions/list.go
package commissions

import (
	"errors"
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	commissionstore "github.com/dalemusser/recoveryhub/internal/app/store/commissions"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/tasks"
)

const (
	opList         = "commission.list"
	opDetails      = "commission.details"
	opDownloadTask = "commission.download_task"
)

// HandleList returns one page of commissions, each with DRC_Name.
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
	policy := listquery.For("List_All_Commissions")
	if err := policy.CheckFilter(b); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opList)
	defer cancel()

	page := paging.Parse(in.Page)
	rows, total, err := commissionstore.New(h.DB).List(ctx, b, page)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	if err := policy.CheckEmpty(total); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	respond.List(w, "Commissions retrieved successfully", rows, paging.NewMeta(page, total))
}

func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	var in idInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opDetails)
	defer cancel()

	row, err := commissionstore.New(h.DB).Get(ctx, in.CommissionID)
	if errors.Is(err, commissionstore.ErrNotFound) {
		err = apperr.NotFoundf("Commission not found")
	}
	if err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}
	respond.OK(w, "Commission details retrieved successfully", row)
}

// HandleDownloadTask records a request to export the commission list.
// Filters are optional.
func (h *Handler) HandleDownloadTask(w http.ResponseWriter, r *http.Request) {
	var in downloadInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	if _, err := in.builder(); err != nil {
		respond.Error(w, h.Log, opDownloadTask, err)
		return
	}
	p := tasks.Download(tasks.TemplateCommissionList, in.params(), in.CreatedBy)
	shared.SubmitTask(w, r, h.Log, h.Tasks, h.Audit, opDownloadTask, p)
}
