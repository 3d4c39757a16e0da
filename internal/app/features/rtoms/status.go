// internal/app/features/rtoms/status.go
package rtoms

import (
	"context"
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/features/shared"
	"github.com/dalemusser/recoveryhub/internal/app/store/lifecycle"
	officerstore "github.com/dalemusser/recoveryhub/internal/app/store/recoveryofficers"
	rtomstore "github.com/dalemusser/recoveryhub/internal/app/store/rtoms"
	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/inputval"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/recoveryhub/internal/app/system/status"
	"github.com/dalemusser/recoveryhub/internal/app/system/txn"
	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	opSuspend   = "rtom.suspend"
	opTerminate = "rtom.terminate"
)

// HandleSuspend moves an Active RTOM to Inactive.
func (h *Handler) HandleSuspend(w http.ResponseWriter, r *http.Request) {
	var in suspendInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opSuspend, err)
		return
	}
	now := shared.Now()
	remark, err := shared.RequiredRemark("reason", in.Reason, in.UpdatedBy, now)
	if err != nil {
		respond.Error(w, h.Log, opSuspend, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opSuspend)
	defer cancel()

	store := rtomstore.New(h.DB)
	rt, err := store.Get(ctx, in.RTOMID)
	if err != nil {
		respond.Error(w, h.Log, opSuspend, classify(err))
		return
	}
	if err := checkTransition(rt.RTOMStatus, status.Inactive); err != nil {
		respond.Error(w, h.Log, opSuspend, err)
		return
	}

	err = store.Transition(ctx, rt.RTOMID, rt.RTOMStatus, lifecycle.Change{
		To:     status.Inactive,
		Entry:  models.StatusEntry{StatusOn: now, StatusBy: in.UpdatedBy},
		Remark: remark,
	})
	if err != nil {
		respond.Error(w, h.Log, opSuspend, classify(err))
		return
	}
	updated, err := store.Get(ctx, rt.RTOMID)
	if err != nil {
		respond.Error(w, h.Log, opSuspend, classify(err))
		return
	}

	h.Audit.RTOMSuspended(r, in.UpdatedBy, rt.RTOMID)
	respond.OK(w, "RTOM suspended successfully", updated)
}

// HandleTerminate ends an RTOM and closes every officer assignment to it.
func (h *Handler) HandleTerminate(w http.ResponseWriter, r *http.Request) {
	var in terminateInput
	if err := inputval.Bind(r, &in); err != nil {
		respond.Error(w, h.Log, opTerminate, err)
		return
	}
	now := shared.Now()
	remark, err := shared.RequiredRemark("reason", in.Reason, in.TerminatedBy, now)
	if err != nil {
		respond.Error(w, h.Log, opTerminate, err)
		return
	}

	ctx, cancel := shared.Context(r, h.Log, opTerminate)
	defer cancel()

	rtoms := rtomstore.New(h.DB)
	officers := officerstore.New(h.DB)

	rt, err := rtoms.Get(ctx, in.RTOMID)
	if err != nil {
		respond.Error(w, h.Log, opTerminate, classify(err))
		return
	}
	if rt.RTOMStatus == status.Terminate {
		respond.Error(w, h.Log, opTerminate, apperr.Conflictf("RTOM is already terminated"))
		return
	}

	var closed int64
	err = txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		err := rtoms.Transition(ctx, rt.RTOMID, rt.RTOMStatus, lifecycle.Change{
			To:     status.Terminate,
			Entry:  models.StatusEntry{StatusOn: now, StatusBy: in.TerminatedBy},
			Remark: remark,
			Set:    bson.M{"rtom_end_dtm": now, "rtom_end_by": in.TerminatedBy},
		})
		if err != nil {
			return err
		}
		txn.Compensate(ctx, func(ctx context.Context) error {
			return rtoms.Revert(ctx, rt.RTOMID, rt.RTOMStatus, "rtom_end_dtm", "rtom_end_by")
		})

		assigned, err := officers.WithRTOM(ctx, rt.RTOMID)
		if err != nil {
			return err
		}
		n, err := officers.CloseRTOM(ctx, rt.RTOMID, now)
		if err != nil {
			return err
		}
		txn.Compensate(ctx, func(ctx context.Context) error {
			for _, o := range assigned {
				if err := officers.Restore(ctx, o); err != nil {
					return err
				}
			}
			return nil
		})
		closed = n
		return nil
	})
	if err != nil {
		respond.Error(w, h.Log, opTerminate, classify(err))
		return
	}

	h.Audit.RTOMTerminated(r, in.TerminatedBy, rt.RTOMID, closed)
	respond.OK(w, "RTOM terminated successfully", terminateResult{
		RTOMID:          rt.RTOMID,
		RTOMStatus:      status.Terminate,
		OfficersUpdated: closed,
	})
}
