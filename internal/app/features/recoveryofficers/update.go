// internal/app/features/recoveryofficers/update.go
package recoveryofficers

import (
	"net/http"
	"strings"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/normalize"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
)

const opUpdate = "ro.update"

// HandleUpdate edits contact details and RTOM assignments. It is allowed
// in every status.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opUpdate, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opUpdate)
	defer cancel()

	o, ok := h.load(ctx, w, opUpdate, in.officerID)
	if !ok {
		return
	}

	now := shared.Now()
	det := officerstore.Details{
		ContactNo: strings.TrimSpace(in.LoginContactNo),
		Email:     normalize.Email(in.LoginEmail),
		Remark:    shared.Remark(in.Remark, in.UpdatedBy, now),
	}
	var changed []string
	if det.ContactNo != "" {
		changed = append(changed, "login_contact_no")
	}
	if det.Email != "" {
		changed = append(changed, "login_email")
	}

	open := make(map[int64]bool, len(o.RTOMs))
	for _, a := range o.RTOMs {
		if a.RTOMStatus != status.Inactive {
			open[a.RTOMID] = true
		}
	}

	var adds []rtomRef
	for _, ref := range in.AddRTOMs {
		if !open[ref.RTOMID] {
			adds = append(adds, ref)
		}
	}
	rtoms, err := lookupRTOMs(ctx, h.DB, adds)
	if err != nil {
		respond.Error(w, h.Log, opUpdate, err)
		return
	}
	for _, rt := range rtoms {
		det.AddRTOMs = append(det.AddRTOMs, models.OfficerRTOM{
			RTOMID:        rt.RTOMID,
			RTOMStatus:    status.Active,
			RTOMCreateDtm: now,
		})
	}
	if len(det.AddRTOMs) > 0 {
		changed = append(changed, "add_rtoms")
	}

	for _, ref := range in.RemoveRTOMs {
		if open[ref.RTOMID] {
			det.RemoveRTOMs = append(det.RemoveRTOMs, ref.RTOMID)
		}
	}
	if len(det.RemoveRTOMs) > 0 {
		changed = append(changed, "remove_rtoms")
	}
	if det.Remark != nil {
		changed = append(changed, "remark")
	}
	if len(changed) == 0 {
		respond.Error(w, h.Log, opUpdate, apperr.Invalid("No changes supplied"))
		return
	}

	ref := officerstore.RefOf(o)
	if err := officerstore.New(h.DB).UpdateDetails(ctx, ref, det, now); err != nil {
		respond.Error(w, h.Log, opUpdate, classify(err))
		return
	}

	h.Audit.OfficerUpdated(r, in.UpdatedBy, o.DrcUserType, ref.ID, strings.Join(changed, ","))
	h.respondCurrent(ctx, w, opUpdate, ref, "Recovery officer details updated successfully")
}
