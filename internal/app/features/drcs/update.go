// internal/app/features/drcs/update.go
package drcs

import (
	"net/http"
	"strings"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	drcstore "github.com/dalemusser/recoveryhub/internal/app/store/drcs"
	rtomstore "github.com/dalemusser/recoveryhub/internal/app/store/rtoms"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/normalize"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
)

const opUpdate = "drc.update"

// HandleUpdate edits contact details, services and RTOM assignments. It
// is allowed in every status, including Terminate.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opUpdate, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opUpdate)
	defer cancel()

	drcs := drcstore.New(h.DB)
	d, err := drcs.Get(ctx, in.DRCID)
	if err != nil {
		respond.Error(w, h.Log, opUpdate, classify(err))
		return
	}

	now := shared.Now()
	det := drcstore.Details{
		ContactNo: strings.TrimSpace(in.ContactNo),
		Email:     normalize.Email(in.Email),
		Address:   strings.TrimSpace(in.Address),
		Remark:    shared.Remark(in.Remark, in.UpdatedBy, now),
	}
	var changed []string
	if det.ContactNo != "" {
		changed = append(changed, "drc_contact_no")
	}
	if det.Email != "" {
		changed = append(changed, "drc_email")
	}
	if det.Address != "" {
		changed = append(changed, "drc_address")
	}

	if in.Services != nil {
		det.Services = make([]models.DRCService, 0, len(in.Services))
		for _, s := range in.Services {
			det.Services = append(det.Services, models.DRCService{
				ServiceID:     s.ServiceID,
				ServiceType:   strings.TrimSpace(s.ServiceType),
				ServiceStatus: status.Active,
				CreateOn:      now,
			})
		}
		changed = append(changed, "services_of_drc")
	}

	if len(in.RTOMs) > 0 {
		assigned := make(map[int64]bool, len(d.RTOMs))
		for _, a := range d.RTOMs {
			assigned[a.RTOMID] = true
		}
		var ids []int64
		for _, ref := range in.RTOMs {
			if !assigned[ref.RTOMID] {
				ids = append(ids, ref.RTOMID)
				assigned[ref.RTOMID] = true
			}
		}
		found, missing, err := rtomstore.New(h.DB).GetMany(ctx, ids)
		if err != nil {
			respond.Error(w, h.Log, opUpdate, err)
			return
		}
		if len(missing) > 0 {
			respond.Error(w, h.Log, opUpdate, missingRTOMs(missing))
			return
		}
		for _, id := range ids {
			rt := found[id]
			det.AddRTOMs = append(det.AddRTOMs, models.DRCRTOM{
				RTOMID:           rt.RTOMID,
				RTOMAbbreviation: rt.Abbreviation,
				RTOMStatus:       status.Active,
				AssignedOn:       now,
				AssignedBy:       in.UpdatedBy,
			})
		}
		if len(det.AddRTOMs) > 0 {
			changed = append(changed, "rtom")
		}
	}
	if det.Remark != nil {
		changed = append(changed, "remark")
	}
	if len(changed) == 0 {
		respond.Error(w, h.Log, opUpdate, apperr.Invalid("No changes supplied"))
		return
	}

	if err := drcs.UpdateDetails(ctx, d.DRCID, det); err != nil {
		respond.Error(w, h.Log, opUpdate, classify(err))
		return
	}
	updated, err := drcs.Get(ctx, d.DRCID)
	if err != nil {
		respond.Error(w, h.Log, opUpdate, classify(err))
		return
	}

	h.Audit.DRCUpdated(r, in.UpdatedBy, d.DRCID, strings.Join(changed, ","))
	respond.OK(w, "DRC details updated successfully", updated)
}
