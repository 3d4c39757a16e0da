// internal/app/features/rtoms/update.go
package rtoms

import (
	"net/http"
	"strings"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	rtomstore "github.com/dalemusser/recoveryhub/internal/app/store/rtoms"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/normalize"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
)

const opUpdate = "rtom.update"

// Action recorded in updated_rtom for a details edit.
const actionUpdate = "update"

// HandleUpdate edits an RTOM's contact details. The state before the
// edit is kept in updated_rtom. Allowed in every status.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opUpdate, err)
		return
	}
	now := shared.Now()
	remark, err := shared.RequiredRemark("reason", in.Reason, in.UpdatedBy, now)
	if err != nil {
		respond.Error(w, h.Log, opUpdate, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opUpdate)
	defer cancel()

	store := rtomstore.New(h.DB)
	prior, err := store.Get(ctx, in.RTOMID)
	if err != nil {
		respond.Error(w, h.Log, opUpdate, classify(err))
		return
	}

	err = store.UpdateDetails(ctx, prior, rtomstore.Details{
		AreaName:    strings.TrimSpace(in.AreaName),
		Email:       normalize.Email(in.Email),
		MobileNo:    trimAll(in.MobileNo),
		TelephoneNo: trimAll(in.TelephoneNo),
	}, models.RTOMUpdate{
		Action:     actionUpdate,
		Reason:     remark.Remark,
		UpdatedBy:  in.UpdatedBy,
		UpdatedDtm: now,
	}, *remark)
	if err != nil {
		respond.Error(w, h.Log, opUpdate, classify(err))
		return
	}

	updated, err := store.Get(ctx, in.RTOMID)
	if err != nil {
		respond.Error(w, h.Log, opUpdate, classify(err))
		return
	}

	h.Audit.RTOMUpdated(r, in.UpdatedBy, in.RTOMID, remark.Remark)
	respond.OK(w, "RTOM details updated successfully", updated)
}
