// internal/app/features/drcs/list.go
package drcs

import (
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	drcstore "github.com/dalemusser/recoveryhub/internal/app/store/drcs"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
)

const (
	opListActive = "drc.list_active"
	opList       = "drc.list"
	opDetails    = "drc.details"
)

// HandleListActive returns every Active company without its services.
func (h *Handler) HandleListActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := shared.Context(r, h.Log, opListActive)
	defer cancel()

	rows, err := drcstore.New(h.DB).ListActive(ctx)
	if err != nil {
		respond.Error(w, h.Log, opListActive, err)
		return
	}
	respond.OK(w, "Active DRCs retrieved successfully", rows)
}

// HandleList returns one page of companies with their officer counts.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in listInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	b := &listquery.Builder{}
	b.Eq("drc_status", in.DRCStatus)
	policy := listquery.For("List_DRCs")
	if err := policy.CheckFilter(b); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opList)
	defer cancel()

	page := paging.Parse(in.Page)
	rows, total, err := drcstore.New(h.DB).List(ctx, b, page)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	if err := policy.CheckEmpty(total); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	respond.List(w, "DRCs retrieved successfully", rows, paging.NewMeta(page, total))
}

// HandleDetails returns one company.
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	var in idInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opDetails)
	defer cancel()

	d, err := drcstore.New(h.DB).Get(ctx, in.DRCID)
	if err != nil {
		respond.Error(w, h.Log, opDetails, classify(err))
		return
	}
	respond.OK(w, "DRC details retrieved successfully", d)
}
