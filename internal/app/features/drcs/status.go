// internal/app/features/drcs/status.go
package drcs

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	drcstore "github.com/dalemusser/recoveryhub/internal/app/store/drcs"
	"github.com/dalemusser/recoveryhub/internal/app/store/lifecycle"
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	userlogstore "github.com/dalemusser/recoveryhub/internal/app/store/userlogs"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/app/system/txn"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	opChangeStatus = "drc.change_status"
	opTerminate    = "drc.terminate"

	logDRCSuspended  = "drc_suspension"
	logDRCTerminated = "drc_termination"
)

// HandleChangeStatus moves a company between Active and Inactive.
func (h *Handler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	var in changeStatusInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opChangeStatus, err)
		return
	}
	now := shared.Now()
	remark, err := shared.RequiredRemark("remark", in.Remark, in.StatusBy, now)
	if err != nil {
		respond.Error(w, h.Log, opChangeStatus, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opChangeStatus)
	defer cancel()

	store := drcstore.New(h.DB)
	d, err := store.Get(ctx, in.DRCID)
	if err != nil {
		respond.Error(w, h.Log, opChangeStatus, classify(err))
		return
	}
	if err := checkTransition(d.DRCStatus, in.DRCStatus); err != nil {
		respond.Error(w, h.Log, opChangeStatus, err)
		return
	}

	err = store.Transition(ctx, d.DRCID, d.DRCStatus, lifecycle.Change{
		To:     in.DRCStatus,
		Entry:  models.StatusEntry{StatusOn: now, StatusBy: in.StatusBy},
		Remark: remark,
	})
	if err != nil {
		respond.Error(w, h.Log, opChangeStatus, classify(err))
		return
	}

	updated, err := store.Get(ctx, d.DRCID)
	if err != nil {
		respond.Error(w, h.Log, opChangeStatus, classify(err))
		return
	}
	h.Audit.DRCStatusChanged(r, in.StatusBy, d.DRCID, d.DRCStatus, in.DRCStatus)
	respond.OK(w, "DRC status updated successfully", updated)
}

// HandleTerminate terminates a company and deactivates its working
// officers in one unit of work.
func (h *Handler) HandleTerminate(w http.ResponseWriter, r *http.Request) {
	var in terminateInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opTerminate, err)
		return
	}
	now := shared.Now()
	remark, err := shared.RequiredRemark("remark", in.Remark, in.RemarkBy, now)
	if err != nil {
		respond.Error(w, h.Log, opTerminate, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opTerminate)
	defer cancel()

	drcs := drcstore.New(h.DB)
	officers := officerstore.New(h.DB)

	d, err := drcs.Get(ctx, in.DRCID)
	if err != nil {
		respond.Error(w, h.Log, opTerminate, classify(err))
		return
	}
	if d.DRCStatus == status.Terminate {
		respond.Error(w, h.Log, opTerminate, apperr.Conflictf("DRC is already terminated"))
		return
	}

	var res struct{ deactivated, terminated int }
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		res.deactivated, res.terminated = 0, 0
		err := drcs.Transition(ctx, d.DRCID, d.DRCStatus, lifecycle.Change{
			To:     status.Terminate,
			Entry:  models.StatusEntry{StatusOn: now, StatusBy: in.RemarkBy},
			Remark: remark,
			Set:    bson.M{"drc_end_dtm": now, "drc_end_by": in.RemarkBy},
		})
		if err != nil {
			return err
		}
		txn.Compensate(ctx, func(ctx context.Context) error {
			return drcs.Revert(ctx, d.DRCID, d.DRCStatus, true, "drc_end_dtm", "drc_end_by")
		})

		working, err := officers.ActiveByDRC(ctx, d.DRCID)
		if err != nil {
			return err
		}
		officerRemark := &models.Remark{Remark: "DRC terminated: " + remark.Remark, RemarkDtm: now, RemarkBy: in.RemarkBy}
		for _, o := range working {
			to, err := endStateFor(o.DrcUserStatus)
			if err != nil {
				return err
			}
			if err := h.endOfficer(ctx, o, to, officerRemark, in.RemarkBy, now); err != nil {
				return err
			}
			if to == status.Inactive {
				res.deactivated++
			} else {
				res.terminated++
			}
		}
		return nil
	})
	if err != nil {
		respond.Error(w, h.Log, opTerminate, classify(err))
		return
	}

	h.Audit.DRCTerminated(r, in.RemarkBy, d.DRCID, res.deactivated+res.terminated)
	respond.OK(w, "DRC terminated successfully", terminateResult{
		DRCID:               d.DRCID,
		DRCStatus:           status.Terminate,
		OfficersDeactivated: res.deactivated,
		OfficersTerminated:  res.terminated,
	})
}

// endStateFor picks where a working officer goes when its company is
// terminated. Active officers are suspended; officers that were never
// approved cannot be suspended and are terminated instead.
func endStateFor(from string) (string, error) {
	if status.Check(from, status.Inactive) == nil {
		return status.Inactive, nil
	}
	if err := status.Check(from, status.Terminate); err != nil {
		return "", apperr.Wrap(err, "Cannot end officer in status "+from)
	}
	return status.Terminate, nil
}

// endOfficer moves o to `to` and mirrors the change on its User_log, with
// compensations for both writes. Must run inside txn.Run.
func (h *Handler) endOfficer(ctx context.Context, o models.RecoveryOfficer, to string, remark *models.Remark, by string, at time.Time) error {
	officers := officerstore.New(h.DB)
	logs := userlogstore.New(h.DB)
	ref := officerstore.RefOf(o)

	c := lifecycle.Change{
		To:     to,
		Entry:  models.StatusEntry{StatusOn: at, StatusBy: by},
		Remark: remark,
	}
	statusType := logDRCSuspended
	var err error
	if to == status.Terminate {
		statusType = logDRCTerminated
		c.Set = bson.M{"ro_end_date": at, "ro_end_by": by}
		err = officers.Terminate(ctx, ref, o.DrcUserStatus, c, at)
	} else {
		err = officers.Transition(ctx, ref, o.DrcUserStatus, c)
	}
	if err != nil {
		return err
	}
	txn.Compensate(ctx, func(ctx context.Context) error {
		return officers.Restore(ctx, o)
	})

	prev, err := logs.Get(ctx, ref.ID, o.DrcUserType)
	if err != nil {
		return err
	}
	if err := logs.SetStatus(ctx, ref.ID, o.DrcUserType, to, statusType, by, at); err != nil {
		return err
	}
	txn.Compensate(ctx, func(ctx context.Context) error {
		return logs.Restore(ctx, prev)
	})
	return nil
}
