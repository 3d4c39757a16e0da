// internal/app/features/rtoms/list.go
package rtoms

import (
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	rtomstore "github.com/dalemusser/recoveryhub/internal/app/store/rtoms"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
)

const (
	opList         = "rtom.list"
	opDetails      = "rtom.details"
	opListOfficers = "rtom.list_officers"
)

// HandleList returns one page of RTOMs with their officer counts.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in listInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	b := &listquery.Builder{}
	b.Eq("rtom_status", in.RTOMStatus)
	policy := listquery.For("List_All_RTOMs")
	if err := policy.CheckFilter(b); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opList)
	defer cancel()

	page := paging.Parse(in.Page)
	rows, total, err := rtomstore.New(h.DB).List(ctx, b, page)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	if err := policy.CheckEmpty(total); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	respond.List(w, "RTOMs retrieved successfully", rows, paging.NewMeta(page, total))
}

// HandleDetails returns one RTOM with its update history.
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	var in idInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opDetails)
	defer cancel()

	rt, err := rtomstore.New(h.DB).Get(ctx, in.RTOMID)
	if err != nil {
		respond.Error(w, h.Log, opDetails, classify(err))
		return
	}
	respond.OK(w, "RTOM details retrieved successfully", rt)
}

// HandleListOfficers returns one page of the officers assigned to an RTOM.
func (h *Handler) HandleListOfficers(w http.ResponseWriter, r *http.Request) {
	var in officersInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opListOfficers, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opListOfficers)
	defer cancel()

	if _, err := rtomstore.New(h.DB).Get(ctx, in.RTOMID); err != nil {
		respond.Error(w, h.Log, opListOfficers, classify(err))
		return
	}

	b := &listquery.Builder{}
	b.Eq("drcUser_status", in.DrcUserStatus)
	policy := listquery.For("List_ROs_By_RTOM")

	page := paging.Parse(in.Page)
	rows, total, err := officerstore.New(h.DB).ListByRTOM(ctx, in.RTOMID, b, page)
	if err != nil {
		respond.Error(w, h.Log, opListOfficers, err)
		return
	}
	if err := policy.CheckEmpty(total); err != nil {
		respond.Error(w, h.Log, opListOfficers, err)
		return
	}
	respond.List(w, "Recovery officers retrieved successfully", rows, paging.NewMeta(page, total))
}
