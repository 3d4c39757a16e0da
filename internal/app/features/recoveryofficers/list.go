// internal/app/features/recoveryofficers/list.go
package recoveryofficers

import (
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/listquery"
	"github.com/dalemusser/recoveryhub/internal/app/system/paging"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
)

const (
	opList    = "ro.list"
	opDetails = "ro.details"
)

// HandleList returns one page of officers with their company name.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var in listInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	b := &listquery.Builder{}
	b.EqInt("drc_id", in.DRCID).
		Eq("drcUser_type", in.DrcUserType).
		Eq("drcUser_status", in.DrcUserStatus).
		EqInt("rtoms_for_ro.rtom_id", in.RTOMID)
	policy := listquery.For("List_RO")
	if err := policy.CheckFilter(b); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opList)
	defer cancel()

	page := paging.Parse(in.Page)
	rows, total, err := officerstore.New(h.DB).List(ctx, b, page)
	if err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	if err := policy.CheckEmpty(total); err != nil {
		respond.Error(w, h.Log, opList, err)
		return
	}
	respond.List(w, "Recovery officers retrieved successfully", rows, paging.NewMeta(page, total))
}

// HandleDetails returns one officer.
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	var in officerID
	if err := inputval.DecodeJSON(r, &in); err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}
	ref, err := in.ref()
	if err != nil {
		respond.Error(w, h.Log, opDetails, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opDetails)
	defer cancel()

	o, err := officerstore.New(h.DB).Get(ctx, ref)
	if err != nil {
		respond.Error(w, h.Log, opDetails, classify(err))
		return
	}
	respond.OK(w, "Recovery officer retrieved successfully", o)
}
